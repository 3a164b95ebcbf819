package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/bkt/internal/bkt"
	"github.com/abhisek/bkt/internal/mastery"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// AnswerRequest is the body of POST /bkt/answer. SkillKey is accepted as
// an alias of SkillID.
type AnswerRequest struct {
	UserID     string  `json:"user_id"`
	SkillID    string  `json:"skill_id"`
	SkillKey   string  `json:"skill_key"`
	Correct    bool    `json:"correct"`
	LessonID   *string `json:"lesson_id"`
	QuestionID *string `json:"question_id"`
}

// AnswerCamelRequest is the camelCase body of POST /api/bkt/answer.
type AnswerCamelRequest struct {
	UserID     string  `json:"userId"`
	SkillID    string  `json:"skillId"`
	SkillKey   string  `json:"skillKey"`
	Correct    bool    `json:"correct"`
	LessonID   *string `json:"lessonId"`
	QuestionID *string `json:"questionId"`
}

// AnswerResponse reports one update and the parameters used for it.
type AnswerResponse struct {
	POld   float64 `json:"p_old"`
	PNew   float64 `json:"p_new"`
	PLearn float64 `json:"p_learn"`
	PGuess float64 `json:"p_guess"`
	PSlip  float64 `json:"p_slip"`
}

type userRequest struct {
	UserID string `json:"userId"`
}

type seedRequest struct {
	UserID        string   `json:"userId"`
	InitialPKnown *float64 `json:"initialPKnown"`
}

type weakestRequest struct {
	UserID string `json:"userId"`
	N      *int   `json:"n"`
	Seed   bool   `json:"seed"`
}

type bootstrapRequest struct {
	UserID string   `json:"userId"`
	PKnown *float64 `json:"pKnown"`
}

// HistoryEvent is one answer in GET /api/bkt/history.
type HistoryEvent struct {
	EventID      string    `json:"event_id"`
	Sequence     int64     `json:"sequence"`
	SkillID      string    `json:"skill_key"`
	LessonID     string    `json:"lesson_id,omitempty"`
	QuestionID   string    `json:"question_id,omitempty"`
	Correct      bool      `json:"was_correct"`
	PKnownBefore float64   `json:"p_known_before"`
	PKnownAfter  float64   `json:"p_known_after"`
	Timestamp    time.Time `json:"timestamp"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) answer(c *gin.Context) {
	var req AnswerRequest
	if !bindValidated(c, answerSchema, &req) {
		return
	}
	skill := req.SkillID
	if strings.TrimSpace(skill) == "" {
		skill = req.SkillKey
	}
	s.recordAnswer(c, mastery.Observation{
		UserID:     req.UserID,
		SkillID:    skill,
		Correct:    req.Correct,
		LessonID:   deref(req.LessonID),
		QuestionID: deref(req.QuestionID),
	})
}

func (s *Server) answerCamel(c *gin.Context) {
	var req AnswerCamelRequest
	if !bindValidated(c, answerCamelSchema, &req) {
		return
	}
	skill := req.SkillID
	if strings.TrimSpace(skill) == "" {
		skill = req.SkillKey
	}
	s.recordAnswer(c, mastery.Observation{
		UserID:     req.UserID,
		SkillID:    skill,
		Correct:    req.Correct,
		LessonID:   deref(req.LessonID),
		QuestionID: deref(req.QuestionID),
	})
}

func (s *Server) recordAnswer(c *gin.Context, obs mastery.Observation) {
	res, err := s.svc.RecordAnswer(c.Request.Context(), obs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, AnswerResponse{
		POld:   res.Old,
		PNew:   res.New,
		PLearn: res.Learn,
		PGuess: res.Guess,
		PSlip:  res.Slip,
	})
}

func (s *Server) mastery(c *gin.Context) {
	var req userRequest
	if !bindValidated(c, userSchema, &req) {
		return
	}
	m, err := s.svc.Mastery(c.Request.Context(), strings.TrimSpace(req.UserID))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) masteryFull(c *gin.Context) {
	var req userRequest
	if !bindValidated(c, userSchema, &req) {
		return
	}
	rows, err := s.svc.FullMastery(c.Request.Context(), strings.TrimSpace(req.UserID))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": rows})
}

// weakest ranks the user's skills weakest first. With seed set, catalog
// skills the user has no state for are created at the seed prior before
// ranking.
func (s *Server) weakest(c *gin.Context) {
	var req weakestRequest
	if !bindValidated(c, weakestSchema, &req) {
		return
	}
	userID := strings.TrimSpace(req.UserID)
	n := mastery.DefaultWeakest
	if req.N != nil {
		n = *req.N
	}

	ctx := c.Request.Context()
	if req.Seed {
		if _, err := s.svc.Seed(ctx, userID, s.seedPrior); err != nil {
			s.fail(c, err)
			return
		}
	}
	rows, err := s.svc.WeakestSkills(ctx, userID, n)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": rows})
}

func (s *Server) seed(c *gin.Context) {
	var req seedRequest
	if !bindValidated(c, seedSchema, &req) {
		return
	}
	p := s.seedPrior
	if req.InitialPKnown != nil {
		p = *req.InitialPKnown
	}
	n, err := s.svc.Seed(c.Request.Context(), strings.TrimSpace(req.UserID), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "seeded": n})
}

func (s *Server) bootstrap(c *gin.Context) {
	var req bootstrapRequest
	if !bindValidated(c, bootstrapSchema, &req) {
		return
	}
	p := s.seedPrior
	if req.PKnown != nil {
		p = *req.PKnown
	}
	ids, err := s.svc.Bootstrap(c.Request.Context(), strings.TrimSpace(req.UserID), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "seededSkills": ids})
}

func (s *Server) history(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	events, err := s.svc.History(c.Request.Context(), userID, strings.TrimSpace(c.Query("skillId")), limit)
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]HistoryEvent, len(events))
	for i, e := range events {
		out[i] = HistoryEvent{
			EventID:      e.EventID,
			Sequence:     e.Sequence,
			SkillID:      e.SkillID,
			LessonID:     e.LessonID,
			QuestionID:   e.QuestionID,
			Correct:      e.Correct,
			PKnownBefore: e.PKnownBefore,
			PKnownAfter:  e.PKnownAfter,
			Timestamp:    e.Timestamp,
		}
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

// fail maps service errors to status codes. Input errors are 400, anything
// else is logged and reported as 500.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mastery.ErrInvalidObservation), errors.Is(err, bkt.ErrInvalidProbability):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(RequestIDHeader)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindValidated reads the body, checks it against schema and decodes it
// into dst. On failure it writes a 400 and returns false.
func bindValidated(c *gin.Context, schema *requestSchema, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body: " + err.Error()})
		return false
	}
	if err := validateBody(schema, raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decode body: " + err.Error()})
		return false
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
