package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/brackenfield/objmeasure/internal/config"
	apperrors "github.com/brackenfield/objmeasure/internal/errors"
	"github.com/brackenfield/objmeasure/internal/logger"
	"github.com/brackenfield/objmeasure/internal/measure"
	"github.com/brackenfield/objmeasure/internal/observer"
	"github.com/brackenfield/objmeasure/internal/rasterimage"
	"github.com/brackenfield/objmeasure/internal/repository"
	"github.com/brackenfield/objmeasure/internal/storage"
	"github.com/brackenfield/objmeasure/internal/strategy"
	"github.com/brackenfield/objmeasure/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var imageURLValidator = validation.NewURLValidator()

// MeasureRequest is the JSON body for POST /measure.
type MeasureRequest struct {
	LabelImageURL string   `json:"label_image_url" binding:"required,url"`
	GreyImageURL  string   `json:"grey_image_url,omitempty"`
	FeatureNames  []string `json:"feature_names,omitempty"`
	Connectivity  int      `json:"connectivity,omitempty"`
	Strategy      string   `json:"strategy,omitempty"`
}

// ObjectMeasurements is one row of a measurement response: an object id
// and its per-feature value slices.
type ObjectMeasurements struct {
	ID     uint32               `json:"id"`
	Values map[string][]float64 `json:"values"`
}

// MeasureResponse is the JSON body returned by POST /measure.
type MeasureResponse struct {
	RunID       string                `json:"run_id"`
	ObjectCount int                   `json:"object_count"`
	DurationMS  int64                 `json:"duration_ms"`
	Features    []string              `json:"features"`
	Objects     []ObjectMeasurements  `json:"objects"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Deps bundles the collaborators the handler needs: the measurement
// tool, an image fetcher, the run-history repository, an event
// publisher, and configuration.
type Deps struct {
	Tool       *measure.MeasurementTool
	Fetcher    storage.ImageFetcher
	Runs       repository.RunRepository
	Publisher  *observer.EventPublisher
	Config     *config.Config
}

// NewHandler builds the gin router exposing the measurement API.
func NewHandler(deps Deps) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(deps.Config.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/features", listFeatures(deps.Tool))
	r.POST("/measure", measureHandler(deps))

	return r
}

func listFeatures(tool *measure.MeasurementTool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"features": tool.Features()})
	}
}

func measureHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), deps.Config.MeasureTimeout)
		defer cancel()

		runID := uuid.NewString()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"run_id": runID,
			"ip":     c.ClientIP(),
		}).Info("processing measurement request")

		var req MeasureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).Error("invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		if err := imageURLValidator.ValidateImageURL(req.LabelImageURL); err != nil {
			statusCode := apperrors.GetStatusCode(err)
			respondError(c, statusCode, "invalid label image URL", err)
			return
		}

		connectivity := req.Connectivity
		if connectivity == 0 {
			connectivity = deps.Config.DefaultConnectivity
		}

		deps.Publisher.NotifyObservers(ctx, observer.MeasurementEvent{
			EventType: observer.MeasurementStarted,
			Timestamp: startTime,
			RunID:     runID,
		})

		label, grey, err := fetchAndDecode(ctx, deps.Fetcher, req.LabelImageURL, req.GreyImageURL)
		if err != nil {
			deps.Publisher.NotifyObservers(ctx, observer.MeasurementEvent{
				EventType:    observer.ImageFetchFailed,
				Timestamp:    time.Now(),
				RunID:        runID,
				Success:      false,
				ErrorMessage: err.Error(),
			})

			var fetchErr *apperrors.AppError
			if errors.Is(err, context.DeadlineExceeded) {
				fetchErr = apperrors.NewTimeoutError("image fetch timeout", err)
			} else {
				fetchErr = apperrors.NewNetworkError("failed to fetch image", err)
			}
			respondError(c, fetchErr.StatusCode, "failed to fetch image", fetchErr)
			return
		}

		measurementStrategy := selectStrategy(req)

		table, err := measurementStrategy.Measure(ctx, deps.Tool, label, grey, nil, connectivity)
		duration := time.Since(startTime)

		if err != nil {
			deps.Publisher.NotifyObservers(ctx, observer.MeasurementEvent{
				EventType:      observer.MeasurementFailed,
				Timestamp:      time.Now(),
				RunID:          runID,
				ProcessingTime: duration,
				Success:        false,
				ErrorMessage:   err.Error(),
			})

			deps.Runs.SaveRun(ctx, &repository.RunRecord{
				ID: runID, ImageSource: req.LabelImageURL, StartedAt: startTime,
				Duration: duration.Seconds(), FeatureNames: req.FeatureNames,
				Connectivity: connectivity, Success: false, ErrorMessage: err.Error(),
			})

			appErr := apperrors.FromMeasureError(err)
			respondError(c, appErr.StatusCode, "measurement failed", appErr)
			return
		}

		deps.Publisher.NotifyObservers(ctx, observer.MeasurementEvent{
			EventType:      observer.MeasurementCompleted,
			Timestamp:      time.Now(),
			RunID:          runID,
			ObjectCount:    table.NumObjects(),
			ProcessingTime: duration,
			Success:        true,
		})

		deps.Runs.SaveRun(ctx, &repository.RunRecord{
			ID: runID, ImageSource: req.LabelImageURL, StartedAt: startTime,
			Duration: duration.Seconds(), ObjectCount: table.NumObjects(),
			FeatureNames: featureNamesOf(table), Connectivity: connectivity, Success: true,
		})

		c.JSON(http.StatusOK, toResponse(runID, duration, table))
	}
}

func selectStrategy(req MeasureRequest) strategy.MeasurementStrategy {
	switch {
	case len(req.FeatureNames) > 0:
		return strategy.NewSelectedMeasurementStrategy(req.FeatureNames)
	case req.Strategy == "fast":
		return strategy.NewFastMeasurementStrategy()
	default:
		return strategy.NewFullMeasurementStrategy()
	}
}

func fetchAndDecode(ctx context.Context, fetcher storage.ImageFetcher, labelURL, greyURL string) (measure.LabelImage, measure.GreyImage, error) {
	labelSrc, err := fetcher.FetchImage(ctx, labelURL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch label image: %w", err)
	}
	label := rasterimage.DecodeLabelImage(labelSrc, [2]float64{1, 1})

	if greyURL == "" {
		return label, nil, nil
	}

	greySrc, err := fetcher.FetchImage(ctx, greyURL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch grey image: %w", err)
	}
	return label, rasterimage.DecodeGreyImage(greySrc), nil
}

func featureNamesOf(table *measure.Table) []string {
	infos := table.Features()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

func toResponse(runID string, duration time.Duration, table *measure.Table) MeasureResponse {
	resp := MeasureResponse{
		RunID:       runID,
		ObjectCount: table.NumObjects(),
		DurationMS:  duration.Milliseconds(),
		Features:    featureNamesOf(table),
		Objects:     make([]ObjectMeasurements, table.NumObjects()),
	}

	for row := 0; row < table.NumObjects(); row++ {
		view := table.ObjectAt(row)
		values := make(map[string][]float64, len(resp.Features))
		for cursor := view.Cursor(); cursor.Valid(); cursor.Next() {
			copied := make([]float64, len(cursor.Values()))
			copy(copied, cursor.Values())
			values[cursor.FeatureName()] = copied
		}
		resp.Objects[row] = ObjectMeasurements{ID: uint32(view.ID()), Values: values}
	}
	return resp
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
