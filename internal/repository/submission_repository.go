package repository

import (
	"ui_review_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(sub *model.Submission) error {
	return r.DB.Create(sub).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Preload("Participant").Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) FindByIDs(ids []string) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("id IN ?", ids).Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindByWorkerAndDay(workerID string, dayIdx int) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Where("worker_id = ? AND day_idx = ?", workerID, dayIdx).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindLatestBefore returns the worker's most recent submission strictly
// before the given day index.
func (r *SubmissionRepository) FindLatestBefore(workerID string, dayIdx int) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Where("worker_id = ? AND day_idx < ?", workerID, dayIdx).
		Order("day_idx DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByDay returns all submissions of one study day; only the fields the
// similarity check needs are selected.
func (r *SubmissionRepository) ListByDay(dayIdx int) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Select("worker_id", "answer").
		Where("day_idx = ?", dayIdx).Find(&subs).Error
	return subs, err
}

// CompletedTaskNumbers returns every distinct non-null task number recorded
// for the worker, in no particular order.
func (r *SubmissionRepository) CompletedTaskNumbers(workerID string) ([]int, error) {
	var numbers []int
	err := r.DB.Model(&model.Submission{}).
		Distinct("task_number").
		Where("worker_id = ? AND task_number IS NOT NULL", workerID).
		Pluck("task_number", &numbers).Error
	return numbers, err
}

// ListAllByDay returns every submission of one study day across all
// conditions, newest first, with participants attached.
func (r *SubmissionRepository) ListAllByDay(dayIdx int) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("day_idx = ?", dayIdx).
		Preload("Participant").
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

type SubmissionFilter struct {
	DayIdx   *int
	WorkerID string
	Cond     int
}

// List returns submissions for the admin dashboard, newest first, restricted
// to participants of one experimental condition.
func (r *SubmissionRepository) List(filter SubmissionFilter) ([]model.Submission, error) {
	query := r.DB.Model(&model.Submission{}).
		Joins("JOIN participants ON participants.worker_id = submissions.worker_id").
		Where("participants.cond = ?", filter.Cond).
		Preload("Participant").
		Order("submissions.submitted_at DESC")

	if filter.DayIdx != nil {
		query = query.Where("submissions.day_idx = ?", *filter.DayIdx)
	}
	if filter.WorkerID != "" {
		query = query.Where("submissions.worker_id = ?", filter.WorkerID)
	}

	var subs []model.Submission
	err := query.Find(&subs).Error
	return subs, err
}

// UpdateScores writes the grading outcome back onto the submission row.
// A map update is used so nil values clear columns to NULL.
func (r *SubmissionRepository) UpdateScores(id string, scoreA, scoreB *int, feedback *string) (*model.Submission, error) {
	updates := map[string]interface{}{
		"score_a":  scoreA,
		"score_b":  scoreB,
		"feedback": feedback,
	}

	result := r.DB.Model(&model.Submission{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(id)
}

// ScoreBucket is one histogram row of the score distribution read model.
type ScoreBucket struct {
	Score int
	Count int
}

// ScoreDistribution groups score_a values of one day by score, restricted to
// participants of the given condition.
func (r *SubmissionRepository) ScoreDistribution(dayIdx, cond int) ([]ScoreBucket, error) {
	var buckets []ScoreBucket
	err := r.DB.Raw(`
		SELECT sub.score_a AS score, COUNT(*) AS count
		FROM submissions sub
		INNER JOIN participants p ON sub.worker_id = p.worker_id
		WHERE sub.day_idx = ? AND sub.score_a IS NOT NULL AND p.cond = ?
		GROUP BY sub.score_a
		ORDER BY sub.score_a`, dayIdx, cond).Scan(&buckets).Error
	return buckets, err
}

// WorkerScore returns the worker's own score_a for the given day, or nil when
// not yet graded.
func (r *SubmissionRepository) WorkerScore(workerID string, dayIdx int) (*int, error) {
	var scores []int
	err := r.DB.Raw(`
		SELECT sub.score_a AS score
		FROM submissions sub
		WHERE sub.worker_id = ? AND sub.day_idx = ? AND sub.score_a IS NOT NULL
		LIMIT 1`, workerID, dayIdx).Scan(&scores).Error
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}
	return &scores[0], nil
}

// CountGoalMet counts submissions strictly before the given day whose score_a
// meets the threshold, restricted to participants of the given condition.
func (r *SubmissionRepository) CountGoalMet(beforeDayIdx, cond, threshold int) (int64, error) {
	var count int64
	err := r.DB.Raw(`
		SELECT COUNT(*)
		FROM submissions sub
		INNER JOIN participants p ON sub.worker_id = p.worker_id
		WHERE sub.day_idx < ? AND sub.score_a IS NOT NULL AND sub.score_a >= ? AND p.cond = ?`,
		beforeDayIdx, threshold, cond).Scan(&count).Error
	return count, err
}
