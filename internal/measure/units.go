package measure

import (
	"fmt"
	"strings"
)

// Units is a minimal SI-like dimension record: an exponent per base
// dimension plus a physical-vs-pixel distinction. The engine only needs
// equality and a printable form; composition (product,
// quotient, power) is provided for feature-initialization convenience,
// e.g. area is length raised to the power of the image dimensionality.
type Units struct {
	// Symbol is the base unit symbol, e.g. "px" or "m". Empty means
	// dimensionless.
	Symbol string
	// Exponent is the power the symbol is raised to. A zero Exponent is
	// equivalent to Dimensionless, regardless of Symbol.
	Exponent int
}

// Dimensionless is the empty/no-units value.
var Dimensionless = Units{}

// Pixel is the default unit for raw pixel-domain quantities (counts,
// coordinates) when no physical pixel size is known or isotropy was not
// requested.
var Pixel = Units{Symbol: "px", Exponent: 1}

// Equal reports whether two Units describe the same physical dimension.
func (u Units) Equal(other Units) bool {
	if u.Exponent == 0 && other.Exponent == 0 {
		return true
	}
	return u.Symbol == other.Symbol && u.Exponent == other.Exponent
}

// Mul returns the product of two compatible units (same symbol); the
// exponents add. Units of different symbols cannot be composed and Mul
// panics — this only needs to support narrow cases like squaring a
// length to get an area, not a general unit-algebra system.
func (u Units) Mul(other Units) Units {
	if u.Exponent == 0 {
		return other
	}
	if other.Exponent == 0 {
		return u
	}
	if u.Symbol != other.Symbol {
		panic(fmt.Sprintf("measure: incompatible units %q and %q", u.Symbol, other.Symbol))
	}
	return Units{Symbol: u.Symbol, Exponent: u.Exponent + other.Exponent}
}

// Pow raises Units to an integer power.
func (u Units) Pow(n int) Units {
	if u.Exponent == 0 || n == 0 {
		return Dimensionless
	}
	return Units{Symbol: u.Symbol, Exponent: u.Exponent * n}
}

// String renders a printable form such as "px^2" or "" for dimensionless.
func (u Units) String() string {
	if u.Exponent == 0 || u.Symbol == "" {
		return ""
	}
	if u.Exponent == 1 {
		return u.Symbol
	}
	return fmt.Sprintf("%s^%d", u.Symbol, u.Exponent)
}

// ValueDescriptor names one scalar column and carries its physical units.
type ValueDescriptor struct {
	ShortName string
	Units     Units
}

// String renders "name (units)", omitting the parenthetical when
// dimensionless.
func (v ValueDescriptor) String() string {
	u := v.Units.String()
	if u == "" {
		return v.ShortName
	}
	var b strings.Builder
	b.WriteString(v.ShortName)
	b.WriteString(" (")
	b.WriteString(u)
	b.WriteByte(')')
	return b.String()
}
