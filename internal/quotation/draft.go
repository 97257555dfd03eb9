package quotation

import (
	"time"
)

// TotalSteps is the number of wizard steps: place selection, then category
// selection.
const TotalSteps = 2

const (
	StepPlace      = 1
	StepCategories = 2
)

// Draft is a session's in-progress quotation wizard state.
type Draft struct {
	CurrentStep        int          `json:"currentStep"`
	SelectedPlace      int          `json:"selectedPlace,omitempty"`
	SelectedCategories []int        `json:"selectedCategories,omitempty"`
	StepValid          map[int]bool `json:"stepValid,omitempty"`
	Completed          bool         `json:"completed"`
	Visible            bool         `json:"visible"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// NewDraft returns a wizard positioned at the first step.
func NewDraft() *Draft {
	return &Draft{
		CurrentStep: StepPlace,
		StepValid:   make(map[int]bool),
		Visible:     true,
	}
}

func (d *Draft) touch() {
	d.UpdatedAt = time.Now().UTC()
}

// SetPlace records the chosen place and validates the first step.
func (d *Draft) SetPlace(placeID int) {
	d.SelectedPlace = placeID
	d.setStepValid(StepPlace, placeID > 0)
	d.touch()
}

// SetCategories records the chosen categories and validates the second step.
func (d *Draft) SetCategories(categoryIDs []int) {
	clean := make([]int, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if id > 0 {
			clean = append(clean, id)
		}
	}
	d.SelectedCategories = clean
	d.setStepValid(StepCategories, len(clean) > 0)
	d.touch()
}

func (d *Draft) setStepValid(step int, valid bool) {
	if d.StepValid == nil {
		d.StepValid = make(map[int]bool)
	}
	d.StepValid[step] = valid
}

// StepIsValid reports whether a step's input passed validation.
func (d *Draft) StepIsValid(step int) bool {
	return d.StepValid[step]
}

// Next advances one step, stopping at the last.
func (d *Draft) Next() {
	if d.CurrentStep < TotalSteps {
		d.CurrentStep++
		d.touch()
	}
}

// Previous moves one step back, stopping at the first.
func (d *Draft) Previous() {
	if d.CurrentStep > 1 {
		d.CurrentStep--
		d.touch()
	}
}

// GoToStep jumps to the given step; out-of-range targets are ignored.
func (d *Draft) GoToStep(step int) {
	if step >= 1 && step <= TotalSteps {
		d.CurrentStep = step
		d.touch()
	}
}

// Complete marks the wizard finished and hides it.
func (d *Draft) Complete() {
	d.Completed = true
	d.Visible = false
	d.touch()
}

// Reset returns the wizard to its initial state. Clearing all catalog
// filters triggers the same reset.
func (d *Draft) Reset() {
	*d = *NewDraft()
	d.touch()
}

// Hide conceals the wizard without losing progress.
func (d *Draft) Hide() {
	d.Visible = false
	d.touch()
}

// Show reveals the wizard again.
func (d *Draft) Show() {
	d.Visible = true
	d.touch()
}
