package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Thread IDs are generated from content so the same logical thread keeps
// its identity across batches.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NewThreadID derives the stable identity of a thread from its channel and
// root message. The root (earliest) message does not change when the thread
// gains replies in a later batch, so resumed threads map to the same key.
func NewThreadID(channelID string, root Message) ID {
	return IDFromContent(channelID + "|" + root.ID + "|" + root.Content)
}

// Message is a single chat message as delivered by the upstream batch
// source. Author identity is pseudonymous and content is already
// PII-redacted and consent-filtered upstream. Immutable once ingested.
type Message struct {
	ID         string
	AuthorHash string
	Content    string
	Timestamp  time.Time
	ReplyTo    string   // Message ID of the parent, empty if not a reply
	Mentions   []string // Author hashes mentioned in the message
	HasCode    bool     // Upstream hint: message looks like it contains code
}

// ThreadStatus tracks the lifecycle of a thread across batches.
type ThreadStatus int

const (
	// ThreadStatusOpen is a freshly clustered thread awaiting processing.
	ThreadStatusOpen ThreadStatus = iota + 1
	// ThreadStatusIncomplete is a thread suspended at evaluation, waiting
	// for new messages.
	ThreadStatusIncomplete
	// ThreadStatusClosed is a thread that reached a terminal outcome.
	ThreadStatusClosed
)

// Thread is a cluster of messages believed to discuss one coherent topic.
// Messages are always in chronological order.
type Thread struct {
	Id        ID // Stable identity: NewThreadID(channel, root message)
	ChannelID string
	Status    ThreadStatus
	Messages  []Message
}

// MessageIDs returns the IDs of the thread's messages in chronological order.
func (t *Thread) MessageIDs() []string {
	ids := make([]string, len(t.Messages))
	for i, m := range t.Messages {
		ids[i] = m.ID
	}
	return ids
}

// Category is the router's classification of a thread. The set is closed:
// a thread is either noise or exactly one substantive category.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNoise
	CategoryTroubleshooting
	CategoryQuestionAnswer
	CategoryGuide
	CategoryDiscussionSummary
)

var categoryNames = map[Category]string{
	CategoryUnknown:           "unknown",
	CategoryNoise:             "noise",
	CategoryTroubleshooting:   "troubleshooting",
	CategoryQuestionAnswer:    "question-answer",
	CategoryGuide:             "guide",
	CategoryDiscussionSummary: "discussion-summary",
}

// String returns the kebab-case label used in prompts and storage.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Substantive reports whether the category carries extractable knowledge.
func (c Category) Substantive() bool {
	switch c {
	case CategoryTroubleshooting, CategoryQuestionAnswer, CategoryGuide, CategoryDiscussionSummary:
		return true
	}
	return false
}

// HasCodeConcept reports whether articles of this category are expected to
// carry a code snippet. Categories without a code concept are not penalized
// for a missing snippet during quality scoring.
func (c Category) HasCodeConcept() bool {
	return c == CategoryTroubleshooting
}

// ParseCategory maps a label back to a Category.
// Unrecognized labels map to CategoryUnknown.
func ParseCategory(label string) Category {
	for c, name := range categoryNames {
		if name == label {
			return c
		}
	}
	return CategoryUnknown
}

// Stage identifies the workflow stage a thread instance is in.
type Stage int

const (
	StageRoute Stage = iota + 1
	StageEvaluate
	StageCompile
	StageGate
)

// String returns the stage name for logs.
func (s Stage) String() string {
	switch s {
	case StageRoute:
		return "route"
	case StageEvaluate:
		return "evaluate"
	case StageCompile:
		return "compile"
	case StageGate:
		return "gate"
	}
	return "unknown"
}

// Outcome is the terminal result of a workflow instance.
type Outcome int

const (
	// OutcomePublished means the article passed the quality gate and was
	// handed to the downstream sink.
	OutcomePublished Outcome = iota + 1
	// OutcomeNoise means the router classified the thread as noise.
	OutcomeNoise
	// OutcomeIncomplete means the thread is suspended at evaluation with a
	// checkpoint, waiting for new messages.
	OutcomeIncomplete
	// OutcomeRejected means the compiled drafts failed the quality gate
	// after the retry budget was exhausted. Nothing is emitted downstream.
	OutcomeRejected
)

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomePublished:
		return "published"
	case OutcomeNoise:
		return "noise"
	case OutcomeIncomplete:
		return "incomplete"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

// EvaluationResult is the evaluator's structured assessment of a thread.
// Produced once per evaluator invocation; immutable.
type EvaluationResult struct {
	HasSolution bool
	HasCode     bool
	IsResolved  bool
	Reasoning   string
}

// CompiledArticle is the compiler's structured output. A retry replaces the
// whole article; drafts are never merged.
type CompiledArticle struct {
	Symptom     string
	Diagnosis   string
	Solution    string
	CodeSnippet string // Empty if no code was shared in the thread
	Language    string
	Framework   string
	Tags        []string
	Confidence  float64 // 0.0-1.0, as reported by the model
	Summary     string  // One-line thread summary for search results
	ArticleType Category
}

// WorkflowState is the per-thread state owned by the workflow runner.
// It is mutated only through stage transitions and discarded at terminal
// outcomes, except INCOMPLETE which persists it as a Checkpoint.
type WorkflowState struct {
	ThreadID   ID
	Stage      Stage
	Category   Category
	Evaluation *EvaluationResult
	Article    *CompiledArticle
	Score      float64
	RetryCount int // 0-3, business-level compile retries
	LastError  string
}

// Checkpoint is a persisted snapshot of a suspended workflow, keyed by the
// thread's stable identity. Version implements optimistic concurrency on
// resume: a stale writer is rejected with a conflict.
type Checkpoint struct {
	ThreadID  ID
	State     WorkflowState
	Version   uint64
	UpdatedAt time.Time
}

// PublishedArticle is a compiled article that passed the quality gate,
// together with its provenance.
type PublishedArticle struct {
	ThreadID    ID
	ChannelID   string
	Article     CompiledArticle
	Score       float64
	PublishedAt time.Time
}
