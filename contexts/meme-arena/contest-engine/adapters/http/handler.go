package httpadapter

import (
	"context"
	"log/slog"

	"memearena/contexts/meme-arena/contest-engine/application/commands"
	"memearena/contexts/meme-arena/contest-engine/application/queries"
	"memearena/contexts/meme-arena/contest-engine/domain/entities"
	httptransport "memearena/contexts/meme-arena/contest-engine/transport/http"
)

type Handler struct {
	Open        commands.OpenContestUseCase
	StartVoting commands.StartVotingUseCase
	Close       commands.CloseContestUseCase
	Submit      commands.SubmitEntryUseCase
	Vote        commands.CastVoteUseCase
	Queries     queries.ContestQueryUseCase
	Logger      *slog.Logger
}

func (h Handler) ActiveContestHandler(ctx context.Context) (httptransport.ActiveContestResponse, error) {
	contest, found, err := h.Queries.ActiveContest(ctx)
	if err != nil {
		return httptransport.ActiveContestResponse{}, err
	}
	if !found {
		return httptransport.ActiveContestResponse{}, nil
	}
	payload := contestPayload(contest)
	return httptransport.ActiveContestResponse{Contest: &payload}, nil
}

func (h Handler) OpenContestHandler(
	ctx context.Context,
	req httptransport.OpenContestRequest,
) (httptransport.ContestMutationResponse, error) {
	contest, err := h.Open.Execute(ctx, commands.OpenContestCommand{
		Title:               req.Title,
		SubmissionCap:       req.SubmissionCap,
		SubmissionsDeadline: req.SubmissionsDeadline,
		VotingDeadline:      req.VotingDeadline,
	})
	if err != nil {
		return httptransport.ContestMutationResponse{}, err
	}
	return httptransport.ContestMutationResponse{OK: true, Contest: contestPayload(contest)}, nil
}

func (h Handler) StartVotingHandler(
	ctx context.Context,
	req httptransport.StartVotingRequest,
) (httptransport.ContestMutationResponse, error) {
	contest, err := h.StartVoting.Execute(ctx, commands.StartVotingCommand{ContestID: req.ContestID})
	if err != nil {
		return httptransport.ContestMutationResponse{}, err
	}
	return httptransport.ContestMutationResponse{OK: true, Contest: contestPayload(contest)}, nil
}

func (h Handler) CloseContestHandler(
	ctx context.Context,
	req httptransport.CloseContestRequest,
) (httptransport.CloseContestResponse, error) {
	result, err := h.Close.Execute(ctx, commands.CloseContestCommand{ContestID: req.ContestID})
	if err != nil {
		return httptransport.CloseContestResponse{}, err
	}
	resp := httptransport.CloseContestResponse{OK: true, Closed: true}
	if result.Winner != nil {
		meme, _, err := h.Queries.Winners.GetMemeProjection(ctx, result.Winner.MemeID)
		if err != nil {
			return httptransport.CloseContestResponse{}, err
		}
		resp.Winner = &httptransport.WinnerPayload{
			WinnerHandle: result.Winner.WinnerHandle,
			Meme:         memePayload(meme),
			WonAt:        result.Winner.WonAt,
		}
	}
	return resp, nil
}

func (h Handler) SubmitEntryHandler(
	ctx context.Context,
	req httptransport.SubmitEntryRequest,
) (httptransport.SubmitEntryResponse, error) {
	result, err := h.Submit.Execute(ctx, commands.SubmitEntryCommand{
		ContestID: req.ContestID,
		Handle:    req.Handle,
		ImgURL:    req.ImgURL,
		MemeID:    req.MemeID,
	})
	if err != nil {
		return httptransport.SubmitEntryResponse{}, err
	}
	return httptransport.SubmitEntryResponse{
		OK:        true,
		EntryID:   result.EntryID,
		Duplicate: result.Duplicate,
	}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	result, err := h.Vote.Execute(ctx, commands.CastVoteCommand{
		EntryID:     req.EntryID,
		VoterHandle: req.VoterHandle,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{OK: true, Duplicate: result.Duplicate}, nil
}

func (h Handler) ContestEntriesHandler(
	ctx context.Context,
	contestID string,
) (httptransport.EntriesResponse, error) {
	views, err := h.Queries.ContestEntries(ctx, contestID)
	if err != nil {
		return httptransport.EntriesResponse{}, err
	}
	items := make([]httptransport.EntryItem, 0, len(views))
	for _, view := range views {
		items = append(items, httptransport.EntryItem{
			ID:              view.Entry.EntryID,
			ContestID:       view.Entry.ContestID,
			MemeID:          view.Entry.MemeID,
			SubmitterHandle: view.Entry.SubmitterHandle,
			CreatedAt:       view.Entry.CreatedAt,
			Meme:            memePayload(view.Meme),
		})
	}
	return httptransport.EntriesResponse{Items: items}, nil
}

func (h Handler) LeaderboardHandler(
	ctx context.Context,
	contestID string,
) (httptransport.LeaderboardResponse, error) {
	board, err := h.Queries.ContestLeaderboard(ctx, contestID)
	if err != nil {
		return httptransport.LeaderboardResponse{}, err
	}
	items := make([]httptransport.LeaderboardItem, 0, len(board.Items))
	for _, tally := range board.Items {
		items = append(items, httptransport.LeaderboardItem{
			ID:              tally.Entry.EntryID,
			SubmitterHandle: tally.Entry.SubmitterHandle,
			Votes:           tally.Votes,
			Meme:            memePayload(tally.Meme),
		})
	}
	return httptransport.LeaderboardResponse{OK: true, ContestID: board.ContestID, Items: items}, nil
}

func (h Handler) WinnersHandler(
	ctx context.Context,
	limit int,
) (httptransport.WinnersResponse, error) {
	history, err := h.Queries.LatestWinners(ctx, limit)
	if err != nil {
		return httptransport.WinnersResponse{}, err
	}
	resp := httptransport.WinnersResponse{Winners: []httptransport.RankedWinnerItem{}}
	if history.Contest != nil {
		payload := contestPayload(*history.Contest)
		resp.Contest = &payload
	}
	for _, line := range history.Winners {
		resp.Winners = append(resp.Winners, httptransport.RankedWinnerItem{
			Rank:         line.Rank,
			WinnerHandle: line.Winner.WinnerHandle,
			Meme:         memePayload(line.Meme),
			WonAt:        line.Winner.WonAt,
		})
	}
	return resp, nil
}

func contestPayload(contest entities.Contest) httptransport.ContestPayload {
	return httptransport.ContestPayload{
		ID:                  contest.ContestID,
		Title:               contest.Title,
		Status:              string(contest.Status),
		SubmissionCap:       contest.SubmissionCap,
		SubmissionsDeadline: contest.SubmissionsDeadline,
		VotingDeadline:      contest.VotingDeadline,
		CreatedAt:           contest.CreatedAt,
	}
}

func memePayload(meme entities.MemeProjection) httptransport.MemePayload {
	return httptransport.MemePayload{
		ID:     meme.MemeID,
		Handle: meme.Handle,
		ImgURL: meme.ImgURL,
	}
}
