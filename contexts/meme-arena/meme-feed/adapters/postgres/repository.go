package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"memearena/contexts/meme-arena/meme-feed/domain/entities"
	domainerrors "memearena/contexts/meme-arena/meme-feed/domain/errors"
	"memearena/contexts/meme-arena/meme-feed/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateMeme(ctx context.Context, meme entities.Meme) error {
	row := memeModelFromEntity(meme)
	create := r.db.WithContext(ctx).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrDuplicateMeme
		}
		return r.logError("meme_repo_create_meme_failed", create.Error,
			"handle", row.Handle,
		)
	}
	return nil
}

func (r *Repository) GetMeme(ctx context.Context, memeID string) (entities.Meme, error) {
	var row memeModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(memeID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Meme{}, domainerrors.ErrMemeNotFound
		}
		return entities.Meme{}, r.logError("meme_repo_get_meme_failed", err,
			"meme_id", strings.TrimSpace(memeID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) FindMemeByHandleAndURL(
	ctx context.Context,
	handle string,
	imgURL string,
) (entities.Meme, bool, error) {
	var row memeModel
	err := r.db.WithContext(ctx).
		Where("handle = ?", strings.TrimSpace(handle)).
		Where("img_url = ?", strings.TrimSpace(imgURL)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Meme{}, false, nil
		}
		return entities.Meme{}, false, r.logError("meme_repo_find_meme_failed", err,
			"handle", strings.TrimSpace(handle),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListMemes(ctx context.Context, handle string, limit int) ([]entities.Meme, error) {
	tx := r.db.WithContext(ctx).Model(&memeModel{})
	if strings.TrimSpace(handle) != "" {
		tx = tx.Where("handle = ?", strings.TrimSpace(handle))
	}
	var rows []memeModel
	if err := tx.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, r.logError("meme_repo_list_memes_failed", err,
			"handle", strings.TrimSpace(handle),
		)
	}
	memes := make([]entities.Meme, 0, len(rows))
	for _, row := range rows {
		memes = append(memes, row.toEntity())
	}
	return memes, nil
}

func (r *Repository) IncrementReaction(
	ctx context.Context,
	memeID string,
	reaction string,
) (map[string]int, error) {
	column, ok := reactionColumns[reaction]
	if !ok {
		return nil, domainerrors.ErrInvalidReaction
	}
	result := r.db.WithContext(ctx).
		Model(&memeModel{}).
		Where("id = ?", strings.TrimSpace(memeID)).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return nil, r.logError("meme_repo_increment_reaction_failed", result.Error,
			"meme_id", strings.TrimSpace(memeID),
			"reaction", reaction,
		)
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrMemeNotFound
	}

	var row memeModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(memeID)).
		First(&row).Error; err != nil {
		return nil, r.logError("meme_repo_reload_reactions_failed", err,
			"meme_id", strings.TrimSpace(memeID),
		)
	}
	return row.reactions(), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "meme-arena/meme-feed",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("meme repository operation failed", fields...)
	return err
}

var reactionColumns = map[string]string{
	entities.ReactionLike: "reaction_like",
	entities.ReactionLove: "reaction_love",
	entities.ReactionLOL:  "reaction_lol",
	entities.ReactionFire: "reaction_fire",
	entities.ReactionWow:  "reaction_wow",
}

type memeModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Handle       string    `gorm:"column:handle"`
	ImgURL       string    `gorm:"column:img_url"`
	Source       string    `gorm:"column:source"`
	ReactionLike int       `gorm:"column:reaction_like"`
	ReactionLove int       `gorm:"column:reaction_love"`
	ReactionLOL  int       `gorm:"column:reaction_lol"`
	ReactionFire int       `gorm:"column:reaction_fire"`
	ReactionWow  int       `gorm:"column:reaction_wow"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (memeModel) TableName() string {
	return "memes"
}

func memeModelFromEntity(meme entities.Meme) memeModel {
	row := memeModel{
		ID:        strings.TrimSpace(meme.MemeID),
		Handle:    strings.TrimSpace(meme.Handle),
		ImgURL:    strings.TrimSpace(meme.ImgURL),
		Source:    string(meme.Source),
		CreatedAt: meme.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m memeModel) toEntity() entities.Meme {
	return entities.Meme{
		MemeID:    m.ID,
		Handle:    m.Handle,
		ImgURL:    m.ImgURL,
		Source:    entities.MemeSource(m.Source),
		Reactions: m.reactions(),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (m memeModel) reactions() map[string]int {
	return map[string]int{
		entities.ReactionLike: m.ReactionLike,
		entities.ReactionLove: m.ReactionLove,
		entities.ReactionLOL:  m.ReactionLOL,
		entities.ReactionFire: m.ReactionFire,
		entities.ReactionWow:  m.ReactionWow,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.MemeRepository = (*Repository)(nil)
