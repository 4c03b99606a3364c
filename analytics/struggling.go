package analytics

import (
	"sort"

	courseModels "comply/models/course"
)

// loadCourses fetches live courses by ID into a lookup map
func (s *Service) loadCourses(ids []uint) (map[uint]courseModels.Course, error) {
	byID := make(map[uint]courseModels.Course)
	if len(ids) == 0 {
		return byID, nil
	}
	var courses []courseModels.Course
	if err := s.db.Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	for _, c := range courses {
		byID[c.ID] = c
	}
	return byID, nil
}

// loadQuestions fetches the questions referenced by answers into a
// lookup map, so each answer's objective can be resolved transitively.
func (s *Service) loadQuestions(answers []courseModels.QuizAnswer) (map[uint]courseModels.QuizQuestion, error) {
	byID := make(map[uint]courseModels.QuizQuestion)
	if len(answers) == 0 {
		return byID, nil
	}
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(answers))
	for _, ans := range answers {
		if !seen[ans.QuestionID] {
			seen[ans.QuestionID] = true
			ids = append(ids, ans.QuestionID)
		}
	}
	var questions []courseModels.QuizQuestion
	if err := s.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID, nil
}

// rankStruggling groups answers by (course, objective), computes the
// incorrect-answer rate per group and returns the worst groups first,
// truncated to the service's top limit. Answers with no resolvable
// objective, and objective identifiers absent from their course's
// current objective list, produce no row.
func (s *Service) rankStruggling(answers []courseModels.QuizAnswer) ([]StrugglingObjective, error) {
	rows := make([]StrugglingObjective, 0)
	if len(answers) == 0 {
		return rows, nil
	}

	questionByID, err := s.loadQuestions(answers)
	if err != nil {
		return nil, err
	}

	set := newTallySet()
	for _, ans := range answers {
		q, ok := questionByID[ans.QuestionID]
		if !ok || q.ObjectiveID == "" {
			continue
		}
		set.Add(objectiveKey{CourseID: q.CourseID, ObjectiveID: q.ObjectiveID}, ans.IsCorrect)
	}

	courseIDs := make([]uint, 0, len(set.Keys()))
	seen := make(map[uint]bool)
	for _, key := range set.Keys() {
		if !seen[key.CourseID] {
			seen[key.CourseID] = true
			courseIDs = append(courseIDs, key.CourseID)
		}
	}
	courseByID, err := s.loadCourses(courseIDs)
	if err != nil {
		return nil, err
	}

	for _, key := range set.Keys() {
		crs, ok := courseByID[key.CourseID]
		if !ok {
			continue
		}
		obj, ok := crs.FindObjective(key.ObjectiveID)
		if !ok {
			// Stale objective reference: the course's list is the
			// source of truth, so the group is dropped.
			continue
		}
		t := set.Get(key)
		rows = append(rows, StrugglingObjective{
			ObjectiveID:         obj.ID,
			ObjectiveText:       obj.Text,
			CourseID:            crs.ID,
			CourseTitle:         crs.Title,
			IncorrectPercentage: roundPct(t.Total-t.Correct, t.Total),
			TotalAnswers:        t.Total,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].IncorrectPercentage > rows[j].IncorrectPercentage
	})
	if len(rows) > s.TopLimit {
		rows = rows[:s.TopLimit]
	}
	return rows, nil
}
