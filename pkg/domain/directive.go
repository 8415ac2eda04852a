package domain

// DirectiveKind names the variant of a Directive.
type DirectiveKind string

const (
	KindAskDisambiguation DirectiveKind = "ask_disambiguation"
	KindAskOpen           DirectiveKind = "ask_open"
	KindDelegate          DirectiveKind = "delegate"
	KindResolve           DirectiveKind = "resolve"
)

// Directive is the decision of the dialog controller for a turn.
// The set of implementations is closed: AskDisambiguation, AskOpen, Delegate, Resolve.
type Directive interface {
	Kind() DirectiveKind
	directive()
}

// AskDisambiguation asks the user to pick one of several candidates for a slot.
type AskDisambiguation struct {
	Slot       Category
	Prompt     string
	Candidates []string
}

// AskOpen re-asks a required slot whose answer could not be resolved.
type AskOpen struct {
	Slot   Category
	Prompt string
}

// Delegate hands remaining slot elicitation back to the platform.
type Delegate struct{}

// Resolve asks the caller to resolve the final outcome.
type Resolve struct{}

func (AskDisambiguation) Kind() DirectiveKind { return KindAskDisambiguation }
func (AskOpen) Kind() DirectiveKind           { return KindAskOpen }
func (Delegate) Kind() DirectiveKind          { return KindDelegate }
func (Resolve) Kind() DirectiveKind           { return KindResolve }

func (AskDisambiguation) directive() {}
func (AskOpen) directive()           {}
func (Delegate) directive()          {}
func (Resolve) directive()           {}
