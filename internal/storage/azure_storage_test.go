package storage

import (
	"os"
	"testing"
)

func TestNewAzureImageFetcherRejectsMalformedContainerURL(t *testing.T) {
	os.Setenv("AZURE_STORAGE_ACCOUNT_KEY", "irrelevant-for-this-case")
	defer os.Unsetenv("AZURE_STORAGE_ACCOUNT_KEY")

	if _, err := NewAzureImageFetcher("https:///mycontainer"); err == nil {
		t.Fatal("expected an error when the account name cannot be derived from the host")
	}
	if _, err := NewAzureImageFetcher("https://myaccount.blob.core.windows.net/"); err == nil {
		t.Fatal("expected an error when the container name is missing from the path")
	}
}

func TestNewAzureImageFetcherRequiresAccountKeyEnvVar(t *testing.T) {
	os.Unsetenv("AZURE_STORAGE_ACCOUNT_KEY")
	_, err := NewAzureImageFetcher("https://myaccount.blob.core.windows.net/mycontainer")
	if err == nil {
		t.Fatal("expected an error when AZURE_STORAGE_ACCOUNT_KEY is not set")
	}
}
