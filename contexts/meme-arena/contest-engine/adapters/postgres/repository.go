package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"memearena/contexts/meme-arena/contest-engine/domain/entities"
	domainerrors "memearena/contexts/meme-arena/contest-engine/domain/errors"
	"memearena/contexts/meme-arena/contest-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

// CreateContest inserts the contest only when no open/voting contest exists.
// The insert is a single conditional statement and the partial unique index
// contests_one_active_idx backstops it, so concurrent opens cannot both land.
func (r *Repository) CreateContest(ctx context.Context, contest entities.Contest) error {
	row := contestModelFromEntity(contest)
	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO contests (id, title, status, submission_cap, submissions_deadline, voting_deadline, created_at)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM contests WHERE status IN ('open', 'voting')
		)`,
		row.ID, row.Title, row.Status, row.SubmissionCap,
		row.SubmissionsDeadline, row.VotingDeadline, row.CreatedAt,
	)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrActiveContestExists
		}
		return r.logError("contest_repo_create_contest_failed", result.Error,
			"contest_id", row.ID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrActiveContestExists
	}
	return nil
}

func (r *Repository) GetContest(ctx context.Context, contestID string) (entities.Contest, error) {
	var row contestModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(contestID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contest{}, domainerrors.ErrContestNotFound
		}
		return entities.Contest{}, r.logError("contest_repo_get_contest_failed", err,
			"contest_id", strings.TrimSpace(contestID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) TransitionStatus(
	ctx context.Context,
	contestID string,
	from []entities.ContestStatus,
	to entities.ContestStatus,
) (bool, error) {
	states := make([]string, 0, len(from))
	for _, status := range from {
		states = append(states, string(status))
	}
	result := r.db.WithContext(ctx).
		Model(&contestModel{}).
		Where("id = ?", strings.TrimSpace(contestID)).
		Where("status IN ?", states).
		Update("status", string(to))
	if result.Error != nil {
		return false, r.logError("contest_repo_transition_status_failed", result.Error,
			"contest_id", strings.TrimSpace(contestID),
			"to_status", string(to),
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) GetActiveContest(ctx context.Context) (entities.Contest, bool, error) {
	var row contestModel
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(entities.ContestStatusOpen),
			string(entities.ContestStatusVoting),
		}).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contest{}, false, nil
		}
		return entities.Contest{}, false, r.logError("contest_repo_get_active_contest_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetOpenContest(ctx context.Context) (entities.Contest, bool, error) {
	var row contestModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.ContestStatusOpen)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contest{}, false, nil
		}
		return entities.Contest{}, false, r.logError("contest_repo_get_open_contest_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetLatestClosedContest(ctx context.Context) (entities.Contest, bool, error) {
	var row contestModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.ContestStatusClosed)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contest{}, false, nil
		}
		return entities.Contest{}, false, r.logError("contest_repo_get_latest_closed_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CreateEntry(ctx context.Context, entry entities.Entry) error {
	row := entryModelFromEntity(entry)
	create := r.db.WithContext(ctx).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrDuplicateEntry
		}
		return r.logError("contest_repo_create_entry_failed", create.Error,
			"contest_id", row.ContestID,
			"submitter_handle", row.SubmitterHandle,
		)
	}
	return nil
}

func (r *Repository) GetEntry(ctx context.Context, entryID string) (entities.Entry, error) {
	var row entryModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(entryID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Entry{}, domainerrors.ErrEntryNotFound
		}
		return entities.Entry{}, r.logError("contest_repo_get_entry_failed", err,
			"entry_id", strings.TrimSpace(entryID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) CountEntries(ctx context.Context, contestID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entryModel{}).
		Where("contest_id = ?", strings.TrimSpace(contestID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("contest_repo_count_entries_failed", err,
			"contest_id", strings.TrimSpace(contestID),
		)
	}
	return int(count), nil
}

func (r *Repository) ListEntries(
	ctx context.Context,
	contestID string,
) ([]entities.Entry, map[string]entities.MemeProjection, error) {
	var rows []entryModel
	if err := r.db.WithContext(ctx).
		Where("contest_id = ?", strings.TrimSpace(contestID)).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, nil, r.logError("contest_repo_list_entries_failed", err,
			"contest_id", strings.TrimSpace(contestID),
		)
	}

	entries := make([]entities.Entry, 0, len(rows))
	memeIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntity())
		memeIDs = append(memeIDs, row.MemeID)
	}
	memes, err := r.memeProjections(ctx, memeIDs)
	if err != nil {
		return nil, nil, err
	}
	return entries, memes, nil
}

func (r *Repository) ListTallies(ctx context.Context, contestID string) ([]entities.EntryTally, error) {
	type tallyRow struct {
		ID              string    `gorm:"column:id"`
		ContestID       string    `gorm:"column:contest_id"`
		MemeID          string    `gorm:"column:meme_id"`
		SubmitterHandle string    `gorm:"column:submitter_handle"`
		CreatedAt       time.Time `gorm:"column:created_at"`
		Votes           int       `gorm:"column:votes"`
		MemeHandle      string    `gorm:"column:meme_handle"`
		MemeImgURL      string    `gorm:"column:meme_img_url"`
	}

	var rows []tallyRow
	err := r.db.WithContext(ctx).
		Table("contest_entries AS e").
		Select(`e.id, e.contest_id, e.meme_id, e.submitter_handle, e.created_at,
			COUNT(v.id) AS votes, m.handle AS meme_handle, m.img_url AS meme_img_url`).
		Joins("LEFT JOIN contest_votes AS v ON v.entry_id = e.id").
		Joins("LEFT JOIN memes AS m ON m.id = e.meme_id").
		Where("e.contest_id = ?", strings.TrimSpace(contestID)).
		Group("e.id, e.contest_id, e.meme_id, e.submitter_handle, e.created_at, m.handle, m.img_url").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("contest_repo_list_tallies_failed", err,
			"contest_id", strings.TrimSpace(contestID),
		)
	}

	tallies := make([]entities.EntryTally, 0, len(rows))
	for _, row := range rows {
		tallies = append(tallies, entities.EntryTally{
			Entry: entities.Entry{
				EntryID:         row.ID,
				ContestID:       row.ContestID,
				MemeID:          row.MemeID,
				SubmitterHandle: row.SubmitterHandle,
				CreatedAt:       row.CreatedAt.UTC(),
			},
			Meme: entities.MemeProjection{
				MemeID: row.MemeID,
				Handle: row.MemeHandle,
				ImgURL: row.MemeImgURL,
			},
			Votes: row.Votes,
		})
	}
	return tallies, nil
}

func (r *Repository) CreateVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	create := r.db.WithContext(ctx).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrDuplicateVote
		}
		return r.logError("contest_repo_create_vote_failed", create.Error,
			"contest_id", row.ContestID,
			"entry_id", row.EntryID,
		)
	}
	return nil
}

func (r *Repository) CreateWinner(ctx context.Context, winner entities.Winner) error {
	row := winnerModelFromEntity(winner)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contest_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrWinnerExists
		}
		return r.logError("contest_repo_create_winner_failed", create.Error,
			"contest_id", row.ContestID,
			"entry_id", row.EntryID,
		)
	}
	if create.RowsAffected == 0 {
		return domainerrors.ErrWinnerExists
	}
	return nil
}

func (r *Repository) GetWinnerByContest(ctx context.Context, contestID string) (entities.Winner, bool, error) {
	var row winnerModel
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", strings.TrimSpace(contestID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Winner{}, false, nil
		}
		return entities.Winner{}, false, r.logError("contest_repo_get_winner_failed", err,
			"contest_id", strings.TrimSpace(contestID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListWinnersByContest(
	ctx context.Context,
	contestID string,
	limit int,
) ([]entities.Winner, error) {
	if limit <= 0 {
		limit = 3
	}
	var rows []winnerModel
	if err := r.db.WithContext(ctx).
		Where("contest_id = ?", strings.TrimSpace(contestID)).
		Order("won_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("contest_repo_list_winners_failed", err,
			"contest_id", strings.TrimSpace(contestID),
		)
	}
	winners := make([]entities.Winner, 0, len(rows))
	for _, row := range rows {
		winners = append(winners, row.toEntity())
	}
	return winners, nil
}

func (r *Repository) GetMemeProjection(ctx context.Context, memeID string) (entities.MemeProjection, bool, error) {
	memes, err := r.memeProjections(ctx, []string{strings.TrimSpace(memeID)})
	if err != nil {
		return entities.MemeProjection{}, false, err
	}
	meme, ok := memes[strings.TrimSpace(memeID)]
	return meme, ok, nil
}

// FindOrCreateMeme resolves an image URL to a meme row, deduplicating on the
// normalized URL. The upsert relies on the memes img_url unique constraint.
func (r *Repository) FindOrCreateMeme(
	ctx context.Context,
	handle string,
	imgURL string,
) (entities.MemeProjection, error) {
	cleanURL := normalizeImgURL(imgURL)

	var existing memeProjectionModel
	err := r.db.WithContext(ctx).
		Where("img_url = ?", cleanURL).
		First(&existing).
		Error
	if err == nil {
		return existing.toProjection(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.MemeProjection{}, r.logError("contest_repo_find_meme_failed", err,
			"img_url", cleanURL,
		)
	}

	row := memeProjectionModel{
		ID:     uuid.NewString(),
		Handle: strings.TrimSpace(handle),
		ImgURL: cleanURL,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "img_url"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return entities.MemeProjection{}, r.logError("contest_repo_create_meme_failed", create.Error,
			"img_url", cleanURL,
		)
	}
	if create.RowsAffected > 0 {
		return row.toProjection(), nil
	}

	// Lost an insert race; the row is there now.
	if err := r.db.WithContext(ctx).
		Where("img_url = ?", cleanURL).
		First(&existing).Error; err != nil {
		return entities.MemeProjection{}, r.logError("contest_repo_load_meme_failed", err,
			"img_url", cleanURL,
		)
	}
	return existing.toProjection(), nil
}

func (r *Repository) memeProjections(
	ctx context.Context,
	memeIDs []string,
) (map[string]entities.MemeProjection, error) {
	projections := make(map[string]entities.MemeProjection, len(memeIDs))
	if len(memeIDs) == 0 {
		return projections, nil
	}
	var rows []memeProjectionModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", memeIDs).
		Find(&rows).Error; err != nil {
		return nil, r.logError("contest_repo_meme_projections_failed", err)
	}
	for _, row := range rows {
		projections[row.ID] = row.toProjection()
	}
	return projections, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "meme-arena/contest-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("contest repository operation failed", fields...)
	return err
}

type contestModel struct {
	ID                  string     `gorm:"column:id;primaryKey"`
	Title               string     `gorm:"column:title"`
	Status              string     `gorm:"column:status"`
	SubmissionCap       int        `gorm:"column:submission_cap"`
	SubmissionsDeadline *time.Time `gorm:"column:submissions_deadline"`
	VotingDeadline      *time.Time `gorm:"column:voting_deadline"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
}

func (contestModel) TableName() string {
	return "contests"
}

func contestModelFromEntity(contest entities.Contest) contestModel {
	row := contestModel{
		ID:                  strings.TrimSpace(contest.ContestID),
		Title:               strings.TrimSpace(contest.Title),
		Status:              string(contest.Status),
		SubmissionCap:       contest.SubmissionCap,
		SubmissionsDeadline: normalizeOptionalTime(contest.SubmissionsDeadline),
		VotingDeadline:      normalizeOptionalTime(contest.VotingDeadline),
		CreatedAt:           contest.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m contestModel) toEntity() entities.Contest {
	return entities.Contest{
		ContestID:           m.ID,
		Title:               m.Title,
		Status:              entities.ContestStatus(m.Status),
		SubmissionCap:       m.SubmissionCap,
		SubmissionsDeadline: normalizeOptionalTime(m.SubmissionsDeadline),
		VotingDeadline:      normalizeOptionalTime(m.VotingDeadline),
		CreatedAt:           m.CreatedAt.UTC(),
	}
}

type entryModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	ContestID       string    `gorm:"column:contest_id"`
	MemeID          string    `gorm:"column:meme_id"`
	SubmitterHandle string    `gorm:"column:submitter_handle"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (entryModel) TableName() string {
	return "contest_entries"
}

func entryModelFromEntity(entry entities.Entry) entryModel {
	row := entryModel{
		ID:              strings.TrimSpace(entry.EntryID),
		ContestID:       strings.TrimSpace(entry.ContestID),
		MemeID:          strings.TrimSpace(entry.MemeID),
		SubmitterHandle: strings.TrimSpace(entry.SubmitterHandle),
		CreatedAt:       entry.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m entryModel) toEntity() entities.Entry {
	return entities.Entry{
		EntryID:         m.ID,
		ContestID:       m.ContestID,
		MemeID:          m.MemeID,
		SubmitterHandle: m.SubmitterHandle,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

type voteModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ContestID   string    `gorm:"column:contest_id"`
	EntryID     string    `gorm:"column:entry_id"`
	VoterHandle string    `gorm:"column:voter_handle"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "contest_votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ID:          strings.TrimSpace(vote.VoteID),
		ContestID:   strings.TrimSpace(vote.ContestID),
		EntryID:     strings.TrimSpace(vote.EntryID),
		VoterHandle: strings.TrimSpace(vote.VoterHandle),
		CreatedAt:   vote.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

type winnerModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	ContestID    string    `gorm:"column:contest_id"`
	EntryID      string    `gorm:"column:entry_id"`
	MemeID       string    `gorm:"column:meme_id"`
	WinnerHandle string    `gorm:"column:winner_handle"`
	WonAt        time.Time `gorm:"column:won_at"`
}

func (winnerModel) TableName() string {
	return "contest_winners"
}

func winnerModelFromEntity(winner entities.Winner) winnerModel {
	row := winnerModel{
		ID:           strings.TrimSpace(winner.WinnerID),
		ContestID:    strings.TrimSpace(winner.ContestID),
		EntryID:      strings.TrimSpace(winner.EntryID),
		MemeID:       strings.TrimSpace(winner.MemeID),
		WinnerHandle: strings.TrimSpace(winner.WinnerHandle),
		WonAt:        winner.WonAt.UTC(),
	}
	if row.WonAt.IsZero() {
		row.WonAt = time.Now().UTC()
	}
	return row
}

func (m winnerModel) toEntity() entities.Winner {
	return entities.Winner{
		WinnerID:     m.ID,
		ContestID:    m.ContestID,
		EntryID:      m.EntryID,
		MemeID:       m.MemeID,
		WinnerHandle: m.WinnerHandle,
		WonAt:        m.WonAt.UTC(),
	}
}

type memeProjectionModel struct {
	ID     string `gorm:"column:id;primaryKey"`
	Handle string `gorm:"column:handle"`
	ImgURL string `gorm:"column:img_url"`
}

func (memeProjectionModel) TableName() string {
	return "memes"
}

func (m memeProjectionModel) toProjection() entities.MemeProjection {
	return entities.MemeProjection{
		MemeID: m.ID,
		Handle: m.Handle,
		ImgURL: m.ImgURL,
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

// normalizeImgURL drops the fragment so cosmetic anchors do not defeat
// deduplication; unparseable values pass through trimmed.
func normalizeImgURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		return trimmed
	}
	parsed.Fragment = ""
	return parsed.String()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ContestRepository = (*Repository)(nil)
var _ ports.EntryRepository = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.WinnerRepository = (*Repository)(nil)
var _ ports.MemeCatalog = (*Repository)(nil)
