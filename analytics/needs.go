package analytics

import (
	courseModels "comply/models/course"
)

// WorkerLearningNeeds classifies one worker's learning objectives as
// needing support and flags borderline course passes as at risk. A
// worker with no attempts yields an empty list, not an error.
func (s *Service) WorkerLearningNeeds(workerID uint) ([]LearningNeed, error) {
	needs := make([]LearningNeed, 0)

	var attempts []courseModels.QuizAttempt
	if err := s.db.Where("user_id = ? AND is_deleted = ?", workerID, false).
		Order("id").Find(&attempts).Error; err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return needs, nil
	}

	// Group attempts by course, keeping first-seen course order
	var courseOrder []uint
	attemptsByCourse := make(map[uint][]courseModels.QuizAttempt)
	attemptIDs := make([]uint, 0, len(attempts))
	for _, a := range attempts {
		if _, ok := attemptsByCourse[a.CourseID]; !ok {
			courseOrder = append(courseOrder, a.CourseID)
		}
		attemptsByCourse[a.CourseID] = append(attemptsByCourse[a.CourseID], a)
		attemptIDs = append(attemptIDs, a.ID)
	}

	courseByID, err := s.loadCourses(courseOrder)
	if err != nil {
		return nil, err
	}

	var answers []courseModels.QuizAnswer
	if err := s.db.Where("attempt_id IN ? AND is_deleted = ?", attemptIDs, false).
		Order("id").Find(&answers).Error; err != nil {
		return nil, err
	}

	questionByID, err := s.loadQuestions(answers)
	if err != nil {
		return nil, err
	}

	// Tally correct/total per (course, objective) across ALL of the
	// worker's attempts, not just the latest. Answers whose question
	// has no objective are excluded.
	set := newTallySet()
	for _, ans := range answers {
		q, ok := questionByID[ans.QuestionID]
		if !ok || q.ObjectiveID == "" {
			continue
		}
		set.Add(objectiveKey{CourseID: q.CourseID, ObjectiveID: q.ObjectiveID}, ans.IsCorrect)
	}

	for _, courseID := range courseOrder {
		crs, ok := courseByID[courseID]
		if !ok {
			continue
		}
		if risk, flagged := atRiskNeed(crs, attemptsByCourse[courseID]); flagged {
			needs = append(needs, risk)
		}
		for _, obj := range crs.ObjectiveList() {
			t := set.Get(objectiveKey{CourseID: courseID, ObjectiveID: obj.ID})
			if t == nil || t.Total == 0 {
				// No recorded answers: no metric, not 0%
				continue
			}
			pct := roundPct(t.Correct, t.Total)
			if pct >= s.SupportThreshold {
				continue
			}
			needs = append(needs, LearningNeed{
				ObjectiveID:     obj.ID,
				ObjectiveText:   obj.Text,
				CourseID:        crs.ID,
				CourseTitle:     crs.Title,
				Status:          StatusNeedsSupport,
				Percentage:      pct,
				TotalQuestions:  t.Total,
				SuggestedAction: "Assign refresher for " + crs.Title,
			})
		}
	}

	return needs, nil
}

// atRiskNeed flags a fragile pass: the worker's most recent passing
// attempt landed on the course's final allowed attempt with a score
// exactly at the pass mark. A course with no passing attempts is never
// at risk, whatever its failed attempts look like.
func atRiskNeed(crs courseModels.Course, attempts []courseModels.QuizAttempt) (LearningNeed, bool) {
	var latest *courseModels.QuizAttempt
	for i := range attempts {
		a := &attempts[i]
		if !a.Passed {
			continue
		}
		// On an attempt-number tie, whichever the store returned first wins
		if latest == nil || a.AttemptNumber > latest.AttemptNumber {
			latest = a
		}
	}
	if latest == nil || crs.MaxAttempts <= 0 {
		return LearningNeed{}, false
	}
	if latest.AttemptNumber != crs.MaxAttempts || latest.Score != crs.PassMark {
		return LearningNeed{}, false
	}
	return LearningNeed{
		ObjectiveID:     CourseRiskObjectiveID,
		ObjectiveText:   "Course passed with no margin",
		CourseID:        crs.ID,
		CourseTitle:     crs.Title,
		Status:          StatusAtRisk,
		Percentage:      latest.Score,
		TotalQuestions:  0,
		SuggestedAction: atRiskAction,
	}, true
}
