package http

import (
	"errors"
	"fmt"

	"github.com/aretw0/decisiontree/internal/sanitize"
	"github.com/aretw0/decisiontree/pkg/domain"
)

// RequestEnvelope is the JSON body the voice platform posts for each turn.
// Only the fields the skill reads are modeled.
type RequestEnvelope struct {
	Version string      `json:"version"`
	Session *Session    `json:"session,omitempty"`
	Request RequestBody `json:"request"`
}

type Session struct {
	New         bool           `json:"new"`
	SessionID   string         `json:"sessionId"`
	Application *Application   `json:"application,omitempty"`
	User        *User          `json:"user,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

type RequestBody struct {
	Type        string  `json:"type"`
	RequestID   string  `json:"requestId"`
	Timestamp   string  `json:"timestamp,omitempty"`
	Locale      string  `json:"locale,omitempty"`
	DialogState string  `json:"dialogState,omitempty"`
	Intent      *Intent `json:"intent,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

type Intent struct {
	Name               string          `json:"name"`
	ConfirmationStatus string          `json:"confirmationStatus,omitempty"`
	Slots              map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name               string       `json:"name"`
	Value              string       `json:"value,omitempty"`
	ConfirmationStatus string       `json:"confirmationStatus,omitempty"`
	Resolutions        *Resolutions `json:"resolutions,omitempty"`
}

type Resolutions struct {
	ResolutionsPerAuthority []AuthorityResolution `json:"resolutionsPerAuthority"`
}

type AuthorityResolution struct {
	Authority string           `json:"authority"`
	Status    ResolutionStatus `json:"status"`
	Values    []ValueWrapper   `json:"values,omitempty"`
}

type ResolutionStatus struct {
	Code string `json:"code"`
}

type ValueWrapper struct {
	Value Value `json:"value"`
}

type Value struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// ResponseEnvelope is the JSON body returned to the platform.
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          ResponseBody   `json:"response"`
}

type ResponseBody struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	Directives       []Directive   `json:"directives,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

type Directive struct {
	Type          string  `json:"type"`
	SlotToElicit  string  `json:"slotToElicit,omitempty"`
	UpdatedIntent *Intent `json:"updatedIntent,omitempty"`
}

// mapRequestToDomain converts the envelope into the core request, sanitizing spoken values.
// A slot whose value fails sanitizing is left out of the intent, so the engine treats the
// turn as an upstream contract violation and answers with an apology. The returned request
// is always usable; rejected joins the per-slot errors.
func mapRequestToDomain(env RequestEnvelope) (req *domain.Request, rejected error) {
	req = &domain.Request{
		Type:        domain.RequestType(env.Request.Type),
		RequestID:   env.Request.RequestID,
		Locale:      env.Request.Locale,
		DialogState: env.Request.DialogState,
		Reason:      env.Request.Reason,
	}
	if env.Session != nil {
		req.SessionID = env.Session.SessionID
		if env.Session.User != nil {
			req.UserID = env.Session.User.UserID
		}
	}

	if in := env.Request.Intent; in != nil {
		intent := &domain.Intent{
			Name:               in.Name,
			ConfirmationStatus: in.ConfirmationStatus,
			Slots:              make(map[string]domain.Slot, len(in.Slots)),
		}
		var errs []error
		for key, s := range in.Slots {
			value, err := sanitize.Line(s.Value)
			if err != nil {
				errs = append(errs, fmt.Errorf("slot %s: %w", key, err))
				continue
			}
			slot := domain.Slot{
				Name:               s.Name,
				Value:              value,
				ConfirmationStatus: s.ConfirmationStatus,
			}
			if slot.Name == "" {
				slot.Name = key
			}
			if s.Resolutions != nil {
				for _, a := range s.Resolutions.ResolutionsPerAuthority {
					auth := domain.Authority{Name: a.Authority, Code: a.Status.Code}
					for _, v := range a.Values {
						auth.Values = append(auth.Values, v.Value.Name)
					}
					slot.Resolutions = append(slot.Resolutions, auth)
				}
			}
			intent.Slots[key] = slot
		}
		req.Intent = intent
		rejected = errors.Join(errs...)
	}
	return req, rejected
}

func mapIntentFromDomain(in *domain.Intent) *Intent {
	if in == nil {
		return nil
	}
	out := &Intent{
		Name:               in.Name,
		ConfirmationStatus: in.ConfirmationStatus,
		Slots:              make(map[string]Slot, len(in.Slots)),
	}
	for key, s := range in.Slots {
		slot := Slot{Name: s.Name, Value: s.Value, ConfirmationStatus: s.ConfirmationStatus}
		if len(s.Resolutions) > 0 {
			slot.Resolutions = &Resolutions{}
			for _, a := range s.Resolutions {
				ar := AuthorityResolution{Authority: a.Name, Status: ResolutionStatus{Code: a.Code}}
				for _, v := range a.Values {
					ar.Values = append(ar.Values, ValueWrapper{Value: Value{Name: v}})
				}
				slot.Resolutions.ResolutionsPerAuthority = append(slot.Resolutions.ResolutionsPerAuthority, ar)
			}
		}
		out.Slots[key] = slot
	}
	return out
}

// mapResponseFromDomain renders the core response as a platform envelope.
func mapResponseFromDomain(resp *domain.Response) ResponseEnvelope {
	env := ResponseEnvelope{Version: "1.0"}
	if resp == nil {
		return env
	}

	if resp.Speech != "" {
		env.Response.OutputSpeech = &OutputSpeech{Type: "PlainText", Text: resp.Speech}
	}
	if resp.Reprompt != "" {
		env.Response.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{Type: "PlainText", Text: resp.Reprompt}}
	}
	for _, d := range resp.Directives {
		env.Response.Directives = append(env.Response.Directives, Directive{
			Type:          string(d.Type),
			SlotToElicit:  d.SlotToElicit,
			UpdatedIntent: mapIntentFromDomain(d.UpdatedIntent),
		})
	}

	// Dialog directives require an open session; otherwise state it explicitly.
	if len(env.Response.Directives) == 0 {
		end := resp.ShouldEndSession
		env.Response.ShouldEndSession = &end
	}
	return env
}
