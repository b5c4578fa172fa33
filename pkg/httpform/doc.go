// Package httpform serves a validated form over net/http.
//
// The handler renders the form on GET and validates submissions on POST.
// Bodies may be urlencoded, multipart or JSON; nested JSON objects flatten
// into dotted field names. Failed submissions are re-rendered with status 422
// and the submitted values, so the renderer shows the errors next to the
// inputs. JSON clients receive the error map as JSON instead of markup.
//
//	handler, err := httpform.New(func(*http.Request) (*validator.Instance, error) {
//		return definition.Validator(nil)
//	}, httpform.WithOnSuccess(saveSignup), httpform.WithRedirect("/welcome"))
package httpform
