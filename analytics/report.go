package analytics

import (
	"sort"

	"comply/models"
	courseModels "comply/models/course"
)

// DetailedOrgPerformance produces the four-section performance report
// for an organization, narrowed by the optional filters. The sections
// are computed independently from the same filtered population; a
// filter combination selecting no workers short-circuits to the zeroed
// report without issuing further queries.
func (s *Service) DetailedOrgPerformance(organizationID uint, filters ReportFilters) (*DetailedReport, error) {
	report := &DetailedReport{
		CoursePerformance:    make([]CoursePerformance, 0),
		StrugglingObjectives: make([]StrugglingObjective, 0),
		RolePerformance:      make([]RolePerformance, 0),
		RetrainingStats: RetrainingStats{
			TopRetrainedCourses: make([]RetrainedCourse, 0),
		},
	}

	var workers []models.User
	wq := s.db.Where("organization_id = ? AND is_deleted = ?", organizationID, false)
	if filters.Role != "" {
		wq = wq.Where("job_title = ?", filters.Role)
	}
	if filters.Category != "" {
		wq = wq.Where("category = ?", filters.Category)
	}
	if err := wq.Order("id").Find(&workers).Error; err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return report, nil
	}

	workerIDs := make([]uint, len(workers))
	for i, w := range workers {
		workerIDs[i] = w.ID
	}

	aq := s.db.Where("user_id IN ? AND is_deleted = ?", workerIDs, false)
	if filters.CourseID != 0 {
		aq = aq.Where("course_id = ?", filters.CourseID)
	}
	if filters.StartDate != nil {
		aq = aq.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		aq = aq.Where("created_at <= ?", *filters.EndDate)
	}
	var attempts []courseModels.QuizAttempt
	if err := aq.Order("id").Find(&attempts).Error; err != nil {
		return nil, err
	}

	sq := s.db.Where("user_id IN ? AND is_deleted = ?", workerIDs, false)
	if filters.CourseID != 0 {
		sq = sq.Where("course_id = ?", filters.CourseID)
	}
	var assignments []courseModels.CourseAssignment
	if err := sq.Order("id").Find(&assignments).Error; err != nil {
		return nil, err
	}

	var answers []courseModels.QuizAnswer
	if len(attempts) > 0 {
		attemptIDs := make([]uint, len(attempts))
		for i, a := range attempts {
			attemptIDs[i] = a.ID
		}
		if err := s.db.Where("attempt_id IN ? AND is_deleted = ?", attemptIDs, false).
			Order("id").Find(&answers).Error; err != nil {
			return nil, err
		}
	}

	courseByID, err := s.loadCourses(attemptCourseIDs(attempts))
	if err != nil {
		return nil, err
	}

	report.CoursePerformance = coursePerformance(attempts, courseByID)
	report.StrugglingObjectives, err = s.rankStruggling(answers)
	if err != nil {
		return nil, err
	}
	report.RolePerformance = rolePerformance(workers, attempts, assignments)
	report.RetrainingStats = retrainingStats(attempts, courseByID, s.TopLimit)

	return report, nil
}

// attemptCourseIDs collects the distinct course IDs of attempts in
// first-seen order
func attemptCourseIDs(attempts []courseModels.QuizAttempt) []uint {
	seen := make(map[uint]bool)
	ids := make([]uint, 0)
	for _, a := range attempts {
		if !seen[a.CourseID] {
			seen[a.CourseID] = true
			ids = append(ids, a.CourseID)
		}
	}
	return ids
}

// coursePerformance summarises the filtered attempts per course:
// rounded mean score, pass rate, attempts per distinct worker and the
// raw attempt count. Only courses with at least one attempt appear.
func coursePerformance(attempts []courseModels.QuizAttempt, courseByID map[uint]courseModels.Course) []CoursePerformance {
	type courseAcc struct {
		scoreSum int
		passed   int
		total    int
		workers  map[uint]bool
	}

	order := make([]uint, 0)
	accs := make(map[uint]*courseAcc)
	for _, a := range attempts {
		acc, ok := accs[a.CourseID]
		if !ok {
			acc = &courseAcc{workers: make(map[uint]bool)}
			accs[a.CourseID] = acc
			order = append(order, a.CourseID)
		}
		acc.scoreSum += a.Score
		acc.total++
		if a.Passed {
			acc.passed++
		}
		acc.workers[a.UserID] = true
	}

	out := make([]CoursePerformance, 0, len(order))
	for _, courseID := range order {
		crs, ok := courseByID[courseID]
		if !ok {
			continue
		}
		acc := accs[courseID]
		avgAttempts := float64(0)
		if len(acc.workers) > 0 {
			avgAttempts = round1(float64(acc.total) / float64(len(acc.workers)))
		}
		out = append(out, CoursePerformance{
			CourseID:      courseID,
			CourseTitle:   crs.Title,
			AvgScore:      roundMean(acc.scoreSum, acc.total),
			PassRate:      roundPct(acc.passed, acc.total),
			AvgAttempts:   avgAttempts,
			TotalAttempts: acc.total,
		})
	}
	return out
}

// roleKey identifies a (job title, worker category) group
type roleKey struct {
	JobTitle string
	Category string
}

// rolePerformance aggregates scores and assignment outcomes per
// (job title, category) pair. Every pair present among the filtered
// workers is seeded with zero counters up front, so groups with
// assignments but no quiz activity still appear; pairs that end up with
// neither scored attempts nor assignments are dropped after
// aggregation.
func rolePerformance(workers []models.User, attempts []courseModels.QuizAttempt, assignments []courseModels.CourseAssignment) []RolePerformance {
	type roleAcc struct {
		scoreSum     int
		attemptCount int
		completed    int
		overdue      int
		assignTotal  int
		workers      int
	}

	order := make([]roleKey, 0)
	accs := make(map[roleKey]*roleAcc)
	pairByWorker := make(map[uint]roleKey)
	for _, w := range workers {
		key := roleKey{JobTitle: w.JobTitle, Category: w.Category}
		pairByWorker[w.ID] = key
		acc, ok := accs[key]
		if !ok {
			acc = &roleAcc{}
			accs[key] = acc
			order = append(order, key)
		}
		acc.workers++
	}

	for _, a := range attempts {
		if acc, ok := accs[pairByWorker[a.UserID]]; ok {
			acc.scoreSum += a.Score
			acc.attemptCount++
		}
	}
	for _, asg := range assignments {
		acc, ok := accs[pairByWorker[asg.UserID]]
		if !ok {
			continue
		}
		acc.assignTotal++
		switch asg.Status {
		case courseModels.AssignmentCompleted:
			acc.completed++
		case courseModels.AssignmentOverdue:
			acc.overdue++
		}
	}

	out := make([]RolePerformance, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		if acc.attemptCount == 0 && acc.assignTotal == 0 {
			continue
		}
		out = append(out, RolePerformance{
			JobTitle:       key.JobTitle,
			Category:       key.Category,
			AvgScore:       roundMean(acc.scoreSum, acc.attemptCount),
			CompletionRate: roundPct(acc.completed, acc.assignTotal),
			OverdueRate:    roundPct(acc.overdue, acc.assignTotal),
			Workers:        acc.workers,
		})
	}
	return out
}

// retrainingStats summarises attempts beyond a worker's first try at a
// course. The completion rate is 0, not a division error, when there
// are no retraining attempts.
func retrainingStats(attempts []courseModels.QuizAttempt, courseByID map[uint]courseModels.Course, topLimit int) RetrainingStats {
	stats := RetrainingStats{TopRetrainedCourses: make([]RetrainedCourse, 0)}

	workers := make(map[uint]bool)
	courseOrder := make([]uint, 0)
	countByCourse := make(map[uint]int)
	total := 0
	passed := 0
	for _, a := range attempts {
		if a.AttemptNumber <= 1 {
			continue
		}
		total++
		if a.Passed {
			passed++
		}
		workers[a.UserID] = true
		if _, ok := countByCourse[a.CourseID]; !ok {
			courseOrder = append(courseOrder, a.CourseID)
		}
		countByCourse[a.CourseID]++
	}

	for _, courseID := range courseOrder {
		crs, ok := courseByID[courseID]
		if !ok {
			continue
		}
		stats.TopRetrainedCourses = append(stats.TopRetrainedCourses, RetrainedCourse{
			CourseTitle: crs.Title,
			Attempts:    countByCourse[courseID],
		})
	}
	sort.SliceStable(stats.TopRetrainedCourses, func(i, j int) bool {
		return stats.TopRetrainedCourses[i].Attempts > stats.TopRetrainedCourses[j].Attempts
	})
	if len(stats.TopRetrainedCourses) > topLimit {
		stats.TopRetrainedCourses = stats.TopRetrainedCourses[:topLimit]
	}

	stats.WorkersInRetraining = len(workers)
	stats.RetrainingCompletionRate = roundPct(passed, total)
	return stats
}
