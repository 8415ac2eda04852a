package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/decisiontree"
	"github.com/aretw0/decisiontree/internal/presentation/tui"
	"github.com/aretw0/decisiontree/internal/runtime"
	"github.com/aretw0/decisiontree/pkg/adapters/synonym"
	"github.com/aretw0/decisiontree/pkg/dialog"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/google/uuid"
)

// maxDialogTurns bounds one recommendation dialog.
const maxDialogTurns = 32

// Platform dialog states sent by the simulator.
const (
	dialogStarted    = "STARTED"
	dialogInProgress = "IN_PROGRESS"
)

// ReasonUserInitiated is sent when the console input ends.
const ReasonUserInitiated = "USER_INITIATED"

// ErrDialogTooLong is returned when a dialog does not converge.
var ErrDialogTooLong = errors.New("dialog did not complete")

// Skill is the part of the skill the simulator drives.
type Skill interface {
	Handle(ctx context.Context, req *domain.Request) *domain.Response
}

// AskOptions configures the console simulator.
type AskOptions struct {
	// Headless disables the banner and markdown rendering.
	Headless bool
	// SessionID defaults to a random "cli-" id.
	SessionID string
	// Catalog resolves typed answers. Defaults to synonym.Default().
	Catalog *synonym.Catalog
	// Renderer formats the final recommendation. Defaults to tui.NewRenderer.
	Renderer tui.Renderer
}

// delegatePrompts are the questions the platform asks itself when the skill delegates.
var delegatePrompts = map[domain.Category]string{
	domain.CategoryPreferredSpecies: "Do you prefer working with animals or people?",
	domain.CategoryBloodTolerance:   "How well do you tolerate blood, low or high?",
	domain.CategoryPersonality:      "Are you an introvert or an extrovert?",
	domain.CategorySalaryImportance: "How important is salary to you: unimportant, somewhat or very?",
}

// Ask runs an interactive session on the console, standing in for the voice platform.
// It returns the recommended outcome, or nil if the session ended without one.
func Ask(ctx context.Context, skill Skill, in io.Reader, out io.Writer, opts AskOptions) (*domain.Outcome, error) {
	s := &simulator{
		ctx:       ctx,
		skill:     skill,
		scanner:   bufio.NewScanner(in),
		out:       out,
		opts:      opts,
		sessionID: opts.SessionID,
	}
	if s.sessionID == "" {
		s.sessionID = "cli-" + uuid.NewString()
	}
	if s.opts.Catalog == nil {
		s.opts.Catalog = synonym.Default()
	}
	if s.opts.Renderer == nil {
		s.opts.Renderer = tui.NewRenderer(opts.Headless)
	}

	if !opts.Headless {
		tui.PrintBanner(out, decisiontree.Version)
	}
	return s.run()
}

type simulator struct {
	ctx       context.Context
	skill     Skill
	scanner   *bufio.Scanner
	out       io.Writer
	opts      AskOptions
	sessionID string
}

func (s *simulator) run() (*domain.Outcome, error) {
	resp := s.send(&domain.Request{Type: domain.RequestLaunch})
	s.say(resp.Speech)

	for {
		line, ok := s.read()
		if !ok {
			return nil, s.end()
		}

		intent := ClassifyIntent(line)
		if intent != runtime.IntentRecommendation {
			resp := s.send(&domain.Request{
				Type:   domain.RequestIntent,
				Intent: &domain.Intent{Name: intent},
			})
			s.say(resp.Speech)
			if resp.ShouldEndSession {
				return nil, nil
			}
			continue
		}

		result, done, err := s.recommend()
		if err != nil || done {
			return result, err
		}
	}
}

// recommend drives one RecommendationIntent dialog. done reports that the
// session is over, either with a recommendation or because input ended.
func (s *simulator) recommend() (result *domain.Outcome, done bool, err error) {
	slots := make(map[string]domain.Slot, len(domain.RequiredSlots()))
	for _, c := range domain.RequiredSlots() {
		slots[c.String()] = domain.Slot{Name: c.String()}
	}
	state := dialogStarted

	for turn := 0; turn < maxDialogTurns; turn++ {
		if pending := s.pending(slots); len(pending) == 0 {
			state = domain.DialogStateCompleted
		}

		resp := s.send(&domain.Request{
			Type:        domain.RequestIntent,
			DialogState: state,
			Intent: &domain.Intent{
				Name:  runtime.IntentRecommendation,
				Slots: cloneSlots(slots),
			},
		})

		if resp.Outcome != nil {
			s.say(resp.Speech)
			s.show(*resp.Outcome)
			return resp.Outcome, true, nil
		}
		if len(resp.Directives) == 0 {
			// Recovered errors and exits carry no directive.
			s.say(resp.Speech)
			return nil, resp.ShouldEndSession, nil
		}

		var slot domain.Category
		var question string
		switch d := resp.Directives[0]; d.Type {
		case domain.OutputElicitSlot:
			slot = domain.Category(d.SlotToElicit)
			question = resp.Speech
		case domain.OutputDelegate:
			pending := s.pending(slots)
			if len(pending) == 0 {
				continue
			}
			slot = pending[0]
			question = delegatePrompts[slot]
		default:
			return nil, true, fmt.Errorf("unsupported directive %q", d.Type)
		}

		s.say(question)
		answer, ok := s.read()
		if !ok {
			return nil, true, s.end()
		}
		slots[slot.String()] = s.opts.Catalog.Resolve(slot, answer)
		state = dialogInProgress
	}
	return nil, true, ErrDialogTooLong
}

// pending lists required slots that have not resolved to a single value, in ask order.
func (s *simulator) pending(slots map[string]domain.Slot) []domain.Category {
	var out []domain.Category
	for _, c := range domain.RequiredSlots() {
		res, err := dialog.Normalize(c, slots[c.String()])
		if err != nil || res.Status != domain.StatusMatched {
			out = append(out, c)
		}
	}
	return out
}

func (s *simulator) send(req *domain.Request) *domain.Response {
	req.SessionID = s.sessionID
	req.RequestID = "cli-req-" + uuid.NewString()
	req.UserID = "cli"
	req.Locale = "en-US"
	return s.skill.Handle(s.ctx, req)
}

func (s *simulator) end() error {
	s.send(&domain.Request{Type: domain.RequestSessionEnded, Reason: ReasonUserInitiated})
	return s.ctx.Err()
}

func (s *simulator) read() (string, bool) {
	if s.ctx.Err() != nil {
		return "", false
	}
	fmt.Fprint(s.out, "> ")
	if !s.scanner.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *simulator) say(speech string) {
	if speech == "" {
		return
	}
	fmt.Fprintln(s.out, speech)
}

func (s *simulator) show(o domain.Outcome) {
	if s.opts.Headless {
		return
	}
	md := fmt.Sprintf("## %s\n\n%s\n", o.Name, o.Description)
	rendered, err := s.opts.Renderer(md)
	if err != nil {
		rendered = md
	}
	fmt.Fprint(s.out, rendered)
}

// ClassifyIntent maps a typed sentence to the intent the voice model would pick.
func ClassifyIntent(line string) string {
	text := strings.ToLower(line)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}

	switch {
	case has("couch", "potato"):
		return runtime.IntentCouchPotato
	case has("help"):
		return runtime.IntentHelp
	case has("cancel"):
		return runtime.IntentCancel
	case has("stop", "exit", "quit", "bye"):
		return runtime.IntentStop
	case has("career", "job", "recommend", "start", "yes"):
		return runtime.IntentRecommendation
	default:
		return runtime.IntentFallback
	}
}

func cloneSlots(slots map[string]domain.Slot) map[string]domain.Slot {
	out := make(map[string]domain.Slot, len(slots))
	for k, v := range slots {
		out[k] = v
	}
	return out
}
