package quiz

import (
	"errors"
	"slices"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("unknown option")
	ErrCompleted       = errors.New("quiz already completed")
	ErrUnanswered      = errors.New("current question has no answer")
	ErrNotCompleted    = errors.New("quiz not completed")
)

// Recommendation defaults. Every completed quiz currently gets the same
// products and routine.
var (
	RecommendedProducts = []string{
		"gentle-foaming-cleanser",
		"vitamin-c-brightening-serum",
		"hydrating-night-moisturizer",
		"mineral-sunscreen-spf-50",
	}
	Routine = []string{
		"Morning: Gentle Cleanser → Vitamin C Serum → Moisturizer → Sunscreen",
		"Evening: Gentle Cleanser → Treatment Product → Night Moisturizer",
	}
)

const defaultSkinType = "normal"

type Status string

const (
	InProgress Status = "in_progress"
	Completed  Status = "completed"
)

// Result is what a completed quiz maps the answers to.
type Result struct {
	SkinType            string   `json:"skinType"`
	Concerns            []string `json:"concerns"`
	RecommendedProducts []string `json:"recommendedProducts"`
	Routine             []string `json:"routine"`
}

// State is a read-only view of an engine.
type State struct {
	Status        Status           `json:"status"`
	QuestionIndex int              `json:"questionIndex"`
	Question      *Question        `json:"question,omitempty"`
	Answers       map[int][]string `json:"answers"`
	Progress      float64          `json:"progress"`
	CanAdvance    bool             `json:"canAdvance"`
}

// Engine walks the questions in order. It is not safe for concurrent use;
// Service serializes access per session.
type Engine struct {
	questions []Question
	current   int
	completed bool
	answers   map[int][]string
}

func NewEngine(questions []Question) *Engine {
	return &Engine{questions: questions, answers: make(map[int][]string)}
}

func (e *Engine) question(id int) (Question, bool) {
	for _, q := range e.questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Answer records optionID for questionID. Single-choice questions keep only
// the latest option; multiple-choice questions toggle membership.
func (e *Engine) Answer(questionID int, optionID string) error {
	if e.completed {
		return ErrCompleted
	}
	q, ok := e.question(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	if !q.hasOption(optionID) {
		return ErrUnknownOption
	}

	if q.Kind == Single {
		e.answers[questionID] = []string{optionID}
		return nil
	}
	selected := e.answers[questionID]
	if i := slices.Index(selected, optionID); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected = append(selected, optionID)
	}
	if len(selected) == 0 {
		delete(e.answers, questionID)
		return nil
	}
	e.answers[questionID] = selected
	return nil
}

// Advance moves to the next question, or completes the quiz from the last
// one. The current question must have at least one selected option.
func (e *Engine) Advance() error {
	if e.completed {
		return ErrCompleted
	}
	if len(e.answers[e.questions[e.current].ID]) == 0 {
		return ErrUnanswered
	}
	if e.current == len(e.questions)-1 {
		e.completed = true
		return nil
	}
	e.current++
	return nil
}

// Retreat steps back one question. It does nothing on the first question
// or once the quiz is completed.
func (e *Engine) Retreat() {
	if e.completed || e.current == 0 {
		return
	}
	e.current--
}

func (e *Engine) Restart() {
	e.current = 0
	e.completed = false
	e.answers = make(map[int][]string)
}

// Result maps the answers to a recommendation. It can be called any number
// of times once the quiz is completed.
func (e *Engine) Result() (Result, error) {
	if !e.completed {
		return Result{}, ErrNotCompleted
	}
	skinType := defaultSkinType
	if sel := e.answers[QuestionSkinType]; len(sel) > 0 {
		skinType = sel[0]
	}
	concerns := slices.Clone(e.answers[QuestionConcerns])
	if concerns == nil {
		concerns = []string{}
	}
	return Result{
		SkinType:            skinType,
		Concerns:            concerns,
		RecommendedProducts: slices.Clone(RecommendedProducts),
		Routine:             slices.Clone(Routine),
	}, nil
}

func (e *Engine) State() State {
	answers := make(map[int][]string, len(e.answers))
	for id, sel := range e.answers {
		answers[id] = slices.Clone(sel)
	}
	st := State{
		Status:        InProgress,
		QuestionIndex: e.current,
		Answers:       answers,
		Progress:      float64(e.current+1) / float64(len(e.questions)) * 100,
	}
	if e.completed {
		st.Status = Completed
		st.Progress = 100
		return st
	}
	q := e.questions[e.current]
	st.Question = &q
	st.CanAdvance = len(e.answers[q.ID]) > 0
	return st
}
