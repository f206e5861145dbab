// Package markerscmd exposes the marker operations as go-command messages so
// front ends dispatch them through the shared command handler.
package markerscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-markers/internal/boundarymarkers"
	"github.com/goliatone/go-markers/internal/fixtures"
	payload "github.com/goliatone/go-markers/internal/validation"
)

const (
	HintMessageType          = "markers.hint"
	ExtractMessageType       = "markers.extract"
	CheckFixturesMessageType = "markers.fixtures.check"
)

// HintCommand renders Markup with markers placed at Selection. The snapshot
// is written to Result.
type HintCommand struct {
	Markup    string                    `json:"markup"`
	Selection boundarymarkers.Selection `json:"selection"`
	Result    *string                   `json:"-"`
}

// Type implements command.Message.
func (HintCommand) Type() string { return HintMessageType }

// Validate ensures the selection is well formed and a result target exists.
func (m HintCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Markup, validation.Required),
		validation.Field(&m.Selection, validation.By(func(any) error {
			return payload.ValidateSelection(m.Selection)
		})),
		validation.Field(&m.Result, validation.NotNil),
	)
}

// ExtractCommand strips the markers from Markup. The cleaned markup and the
// selection the markers encoded are written to Result.
type ExtractCommand struct {
	Markup string                         `json:"markup"`
	Result *boundarymarkers.ExtractResult `json:"-"`
}

// Type implements command.Message.
func (ExtractCommand) Type() string { return ExtractMessageType }

// Validate ensures markup and a result target were supplied.
func (m ExtractCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Markup, validation.Required),
		validation.Field(&m.Result, validation.NotNil),
	)
}

// CheckFixturesCommand runs every fixture found under Dir. A blank Dir means
// the runner's base directory.
type CheckFixturesCommand struct {
	Dir     string           `json:"dir,omitempty"`
	Pattern string           `json:"pattern,omitempty"`
	Result  *fixtures.Report `json:"-"`
}

// Type implements command.Message.
func (CheckFixturesCommand) Type() string { return CheckFixturesMessageType }

// Validate ensures a report target was supplied.
func (m CheckFixturesCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Result, validation.NotNil),
	)
}
