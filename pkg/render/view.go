package render

import (
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// FieldView is the render-ready projection of one registered field.
type FieldView struct {
	Name         string   `json:"name"`
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	InputType    string   `json:"inputType"`
	Value        string   `json:"value"`
	Placeholder  string   `json:"placeholder,omitempty"`
	Help         string   `json:"help,omitempty"`
	HelpID       string   `json:"helpId,omitempty"`
	Required     bool     `json:"required"`
	Invalid      bool     `json:"invalid"`
	AriaInvalid  string   `json:"ariaInvalid"`
	AriaRequired string   `json:"ariaRequired"`
	DescribedBy  string   `json:"describedBy,omitempty"`
	ErrorID      string   `json:"errorId"`
	Errors       []string `json:"errors,omitempty"`
	MinLength    int      `json:"minLength,omitempty"`
}

// FormView is the render-ready projection of a validator.Instance.
type FormView struct {
	Action      string        `json:"action"`
	Method      string        `json:"method"`
	Title       string        `json:"title,omitempty"`
	SubmitLabel string        `json:"submitLabel"`
	Fields      []FieldView   `json:"fields"`
	FormErrors  []string      `json:"formErrors,omitempty"`
	Hidden      []HiddenField `json:"hidden,omitempty"`
	Invalid     bool          `json:"invalid"`
}

// DefaultSubmitLabel is used when RenderOptions.SubmitLabel is empty.
const DefaultSubmitLabel = "Submit"

// BuildView projects form into a FormView. Visible errors are the instance's
// touched-field errors plus the server-side options.Errors.
func BuildView(form *validator.Instance, options RenderOptions) FormView {
	view := FormView{
		Action:      options.Action,
		Method:      strings.ToUpper(strings.TrimSpace(options.Method)),
		Title:       options.Title,
		SubmitLabel: options.SubmitLabel,
		FormErrors:  MergeFormErrors(options.FormErrors),
		Hidden:      SortedHiddenFields(options.Hidden),
	}
	if view.Method == "" {
		view.Method = "POST"
	}
	if view.SubmitLabel == "" {
		view.SubmitLabel = DefaultSubmitLabel
	}
	if form == nil {
		return view
	}

	visible := form.VisibleErrors()
	for name, messages := range options.Errors {
		visible = visible.With(name, normalizeMessages(append(visible.Get(name), messages...)))
	}
	set := form.Rules()

	for _, field := range form.Fields() {
		desc, _ := set.Lookup(field.Name)
		fv := FieldView{
			Name:        field.Name,
			ID:          FieldID(field.Name),
			Label:       field.DisplayLabel(),
			InputType:   field.Input(),
			Value:       options.Values[field.Name],
			Placeholder: field.Placeholder,
			Help:        field.Help,
			Required:    desc.Required,
			ErrorID:     validator.ErrorID(field.Name),
			Errors:      visible.Get(field.Name),
			MinLength:   desc.MinLength,
		}
		fv.Invalid = len(fv.Errors) > 0
		attrs := validator.FieldAttributes{Invalid: fv.Invalid, Required: fv.Required}
		fv.AriaInvalid = attrs.AriaInvalid()
		fv.AriaRequired = attrs.AriaRequired()

		var describedBy []string
		if fv.Help != "" {
			fv.HelpID = strings.TrimSuffix(fv.ErrorID, "-error") + "-help"
			describedBy = append(describedBy, fv.HelpID)
		}
		if fv.Invalid {
			describedBy = append(describedBy, fv.ErrorID)
			view.Invalid = true
		}
		fv.DescribedBy = strings.Join(describedBy, " ")
		view.Fields = append(view.Fields, fv)
	}
	if len(view.FormErrors) > 0 {
		view.Invalid = true
	}
	return view
}

// FieldID returns the element id used for a field's input.
func FieldID(name string) string {
	return strings.TrimSuffix(validator.ErrorID(name), "-error")
}
