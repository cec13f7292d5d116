package gps

import (
	"errors"
	"fmt"
)

// Rational is an EXIF rational value
type Rational struct {
	Num int64
	Den int64
}

// Float returns the value of r, failing on a zero denominator
func (r Rational) Float() (float64, error) {
	if r.Den == 0 {
		return 0, errZeroDenominator
	}
	return float64(r.Num) / float64(r.Den), nil
}

// RationalSource is a raw GPS tag value that decomposes into numerator/denominator pairs.
// *tiff.Tag from goexif satisfies it through a thin adapter.
type RationalSource interface {
	Len() int
	Rat2(i int) (num, den int64, err error)
}

// Rationals is an in-memory RationalSource
type Rationals []Rational

func (rs Rationals) Len() int {
	return len(rs)
}

func (rs Rationals) Rat2(i int) (num, den int64, err error) {
	if i < 0 || i >= len(rs) {
		return 0, 0, fmt.Errorf("index %d out of range", i)
	}
	return rs[i].Num, rs[i].Den, nil
}

// Triple builds a degrees/minutes/seconds value with all denominators set to 1
func Triple(d, m, s int64) Rationals {
	return Rationals{{d, 1}, {m, 1}, {s, 1}}
}

var errZeroDenominator = errors.New("zero denominator")

// MalformedRationalError reports a GPS value that could not be decomposed
type MalformedRationalError struct {
	Component string
	Err       error
}

func (e *MalformedRationalError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("malformed GPS rational: %v", e.Err)
	}
	return fmt.Sprintf("malformed GPS rational (%s): %v", e.Component, e.Err)
}

func (e *MalformedRationalError) Unwrap() error {
	return e.Err
}

var components = [...]string{"degrees", "minutes", "seconds"}

// ToDegrees converts a degrees/minutes/seconds triple to decimal degrees
func ToDegrees(v RationalSource) (float64, error) {
	if v == nil {
		return 0, &MalformedRationalError{Err: errors.New("missing value")}
	}
	if n := v.Len(); n != len(components) {
		return 0, &MalformedRationalError{Err: fmt.Errorf("expected 3 components, got %d", n)}
	}

	var parts [3]float64
	for i, name := range components {
		num, den, err := v.Rat2(i)
		if err != nil {
			return 0, &MalformedRationalError{Component: name, Err: err}
		}
		f, err := Rational{num, den}.Float()
		if err != nil {
			return 0, &MalformedRationalError{Component: name, Err: err}
		}
		parts[i] = f
	}

	return parts[0] + parts[1]/60.0 + parts[2]/3600.0, nil
}
