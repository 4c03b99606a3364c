package analytics

import (
	"comply/models"
	courseModels "comply/models/course"
)

// OrgPerformanceOverview returns the organization's worst-performing
// objectives ranked by incorrect-answer rate, truncated to the top
// limit. An organization with no workers, attempts or answers yields an
// empty list at whichever stage runs dry.
func (s *Service) OrgPerformanceOverview(organizationID uint) ([]StrugglingObjective, error) {
	empty := make([]StrugglingObjective, 0)

	var workerIDs []uint
	if err := s.db.Model(&models.User{}).
		Where("organization_id = ? AND is_deleted = ?", organizationID, false).
		Order("id").Pluck("id", &workerIDs).Error; err != nil {
		return nil, err
	}
	if len(workerIDs) == 0 {
		return empty, nil
	}

	var attemptIDs []uint
	if err := s.db.Model(&courseModels.QuizAttempt{}).
		Where("user_id IN ? AND is_deleted = ?", workerIDs, false).
		Order("id").Pluck("id", &attemptIDs).Error; err != nil {
		return nil, err
	}
	if len(attemptIDs) == 0 {
		return empty, nil
	}

	var answers []courseModels.QuizAnswer
	if err := s.db.Where("attempt_id IN ? AND is_deleted = ?", attemptIDs, false).
		Order("id").Find(&answers).Error; err != nil {
		return nil, err
	}

	return s.rankStruggling(answers)
}
