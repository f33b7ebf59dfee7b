package commands

import (
	"context"
	"log/slog"
	"strings"

	application "memearena/contexts/meme-arena/meme-feed/application"
	"memearena/contexts/meme-arena/meme-feed/domain/entities"
	domainerrors "memearena/contexts/meme-arena/meme-feed/domain/errors"
	"memearena/contexts/meme-arena/meme-feed/ports"
)

type ReactCommand struct {
	MemeID   string
	Reaction string
}

type ReactUseCase struct {
	Memes  ports.MemeRepository
	Logger *slog.Logger
}

// Execute bumps one reaction counter. The increment is a single atomic store
// statement; there is no read-modify-write of the counter in process.
func (uc ReactUseCase) Execute(ctx context.Context, cmd ReactCommand) (map[string]int, error) {
	logger := application.ResolveLogger(uc.Logger)
	memeID := strings.TrimSpace(cmd.MemeID)
	if memeID == "" || !entities.IsAllowedReaction(cmd.Reaction) {
		return nil, domainerrors.ErrInvalidReaction
	}

	reactions, err := uc.Memes.IncrementReaction(ctx, memeID, cmd.Reaction)
	if err != nil {
		return nil, err
	}
	logger.Info("reaction recorded",
		"event", "meme_reaction_recorded",
		"module", "meme-arena/meme-feed",
		"layer", "application",
		"meme_id", memeID,
		"reaction", cmd.Reaction,
	)
	return reactions, nil
}
