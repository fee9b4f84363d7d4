// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/guards"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
)

// Polls manages event polls and votes.
type Polls struct {
	st *store.Store
}

func NewPolls(st *store.Store) *Polls {
	return &Polls{st: st}
}

func pollDetail(ctx context.Context, tx *store.Tx, poll *models.Poll) (*models.PollDetail, error) {
	questions, err := tx.PollQuestions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	return &models.PollDetail{Poll: *poll, Questions: questions}, nil
}

func loadPoll(ctx context.Context, tx *store.Tx, pollID int64) (*models.Poll, error) {
	poll, err := tx.GetPoll(ctx, pollID)
	if err != nil {
		return nil, notFound(err, "Poll not found")
	}
	return poll, nil
}

// validatePollShape rejects polls without questions and questions with
// fewer than two options.
func validatePollShape(req models.CreatePollRequest) error {
	if len(req.Questions) == 0 {
		return apperr.BadRequest("Poll must contain questions")
	}
	for _, q := range req.Questions {
		if len(q.Options) < 2 {
			return apperr.BadRequest("Each question needs at least two options")
		}
	}
	return nil
}

// CreatePoll is organizer-only and all-or-nothing: the poll, its
// questions and options are written in one transaction.
func (p *Polls) CreatePoll(ctx context.Context, actorID, eventID int64, req models.CreatePollRequest) (*models.PollDetail, error) {
	var detail *models.PollDetail
	err := p.st.InTx(ctx, func(tx *store.Tx) error {
		ev, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if !ev.PollsEnabled {
			return apperr.BadRequest("Polls are not enabled for this event")
		}
		if err := check(ctx, tx, guards.IsEventOrganizer, actorID, eventID, errOrganizerRequired); err != nil {
			return err
		}
		if err := validatePollShape(req); err != nil {
			return err
		}

		poll := &models.Poll{EventID: eventID, Title: req.Title, CreatedByID: actorID, IsActive: true}
		if err := tx.InsertPoll(ctx, poll); err != nil {
			return err
		}
		for _, q := range req.Questions {
			questionID, err := tx.InsertQuestion(ctx, poll.ID, q.Question)
			if err != nil {
				return err
			}
			for _, o := range q.Options {
				if _, err := tx.InsertOption(ctx, questionID, o.Label); err != nil {
					return err
				}
			}
		}

		detail, err = pollDetail(ctx, tx, poll)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("poll created", "poll_id", detail.ID, "event_id", eventID, "questions", len(detail.Questions))
	return detail, nil
}

func (p *Polls) ListPolls(ctx context.Context, actorID, eventID int64) ([]models.Poll, error) {
	var polls []models.Poll
	err := p.st.InTx(ctx, func(tx *store.Tx) error {
		if err := eventAccess(ctx, tx, actorID, eventID); err != nil {
			return err
		}
		var err error
		polls, err = tx.ListPolls(ctx, eventID)
		return err
	})
	return polls, err
}

func (p *Polls) GetPoll(ctx context.Context, actorID, pollID int64) (*models.PollDetail, error) {
	var detail *models.PollDetail
	err := p.st.InTx(ctx, func(tx *store.Tx) error {
		poll, err := loadPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}
		if err := check(ctx, tx, guards.IsEventMember, actorID, poll.EventID, errEventAccess); err != nil {
			return err
		}
		detail, err = pollDetail(ctx, tx, poll)
		return err
	})
	return detail, err
}

// SubmitVotes applies every vote in one transaction. A repeated vote on
// a question replaces the voter's earlier option. Any invalid entry
// rolls back the whole submission.
func (p *Polls) SubmitVotes(ctx context.Context, actorID, pollID int64, votes []models.VoteItem) (*models.PollDetail, error) {
	var detail *models.PollDetail
	err := p.st.InTx(ctx, func(tx *store.Tx) error {
		poll, err := loadPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}
		if !poll.IsActive {
			return apperr.BadRequest("Poll is closed")
		}
		if err := check(ctx, tx, guards.IsEventMember, actorID, poll.EventID, errEventAccess); err != nil {
			return err
		}

		questions, err := tx.PollQuestions(ctx, pollID)
		if err != nil {
			return err
		}
		options := make(map[int64]map[int64]bool, len(questions))
		for _, q := range questions {
			opts := make(map[int64]bool, len(q.Options))
			for _, o := range q.Options {
				opts[o.ID] = true
			}
			options[q.ID] = opts
		}

		for _, v := range votes {
			opts, ok := options[v.QuestionID]
			if !ok {
				return apperr.BadRequestf("Question %d not part of this poll", v.QuestionID)
			}
			if !opts[v.OptionID] {
				return apperr.BadRequestf("Option %d invalid for question %d", v.OptionID, v.QuestionID)
			}
			err := tx.UpsertVote(ctx, models.PollVote{QuestionID: v.QuestionID, OptionID: v.OptionID, VoterID: actorID})
			if err != nil {
				return err
			}
		}

		detail, err = pollDetail(ctx, tx, poll)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("votes submitted", "poll_id", pollID, "voter", actorID, "count", len(votes))
	return detail, nil
}

// ClosePoll deactivates the poll; later votes fail with "Poll is closed"
func (p *Polls) ClosePoll(ctx context.Context, actorID, pollID int64) (*models.PollDetail, error) {
	var detail *models.PollDetail
	err := p.st.InTx(ctx, func(tx *store.Tx) error {
		poll, err := loadPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}
		if err := check(ctx, tx, guards.IsEventOrganizer, actorID, poll.EventID, errOrganizerRequired); err != nil {
			return err
		}
		if err := tx.SetPollActive(ctx, pollID, false); err != nil {
			return notFound(err, "Poll not found")
		}
		poll.IsActive = false
		detail, err = pollDetail(ctx, tx, poll)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("poll closed", "poll_id", pollID, "by", actorID)
	return detail, nil
}
