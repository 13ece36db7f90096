package offer

import (
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrPackageIsNotConstructed is returned when using an improperly initialized Package.
var ErrPackageIsNotConstructed = errs.NewValueIsRequiredError(
	"package must be created via NewPackage constructor")

// Package describes the parcel a business wants delivered: weight, dimensions,
// a free-form description, and whether it needs fragile handling.
// Package is an immutable value object.
type Package struct { //nolint:recvcheck //using for validation
	weightKg    float64
	lengthCm    float64
	widthCm     float64
	heightCm    float64
	description string
	fragile     bool

	guard guard.ConstructorGuard
}

// NewPackage creates a Package. Weight must be positive; dimensions must not be
// negative (zero means "not measured").
func NewPackage(
	weightKg float64,
	lengthCm, widthCm, heightCm float64,
	description string,
	fragile bool,
) (Package, error) {
	if weightKg <= 0 {
		return Package{}, errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%f is not greater than 0", weightKg))
	}
	if lengthCm < 0 || widthCm < 0 || heightCm < 0 {
		return Package{}, errs.NewValueIsInvalidError("dimensions")
	}

	return Package{
		weightKg:    weightKg,
		lengthCm:    lengthCm,
		widthCm:     widthCm,
		heightCm:    heightCm,
		description: description,
		fragile:     fragile,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Package was properly constructed.
func (p Package) Validate() error {
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// WeightKg returns the package weight in kilograms.
func (p Package) WeightKg() float64 {
	return p.weightKg
}

// LengthCm returns the package length in centimeters (0 when not measured).
func (p Package) LengthCm() float64 {
	return p.lengthCm
}

// WidthCm returns the package width in centimeters (0 when not measured).
func (p Package) WidthCm() float64 {
	return p.widthCm
}

// HeightCm returns the package height in centimeters (0 when not measured).
func (p Package) HeightCm() float64 {
	return p.heightCm
}

// Description returns the free-form package description.
func (p Package) Description() string {
	return p.description
}

// Fragile reports whether the package needs fragile handling.
func (p Package) Fragile() bool {
	return p.fragile
}
