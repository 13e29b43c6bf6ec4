package cli

import (
	"context"
	"fmt"
)

// Courses lists the courses visible to the logged-in user.
func (a *App) Courses(ctx context.Context) error {
	courses, err := a.api.Courses(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(courses) == 0 {
		printlnFn("No courses.")
		return nil
	}
	for _, c := range courses {
		printlnFn(fmt.Sprintf("%s  %s (curator: %s)", c.ID, c.Title, c.Curator))
	}
	return nil
}

// Assignments lists one course's assignments with submission status.
func (a *App) Assignments(ctx context.Context, courseID string) error {
	assignments, err := a.api.Assignments(ctx, courseID)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(assignments) == 0 {
		printlnFn("No assignments.")
		return nil
	}
	for _, as := range assignments {
		line := fmt.Sprintf("%s  %s [%s]", as.ID, as.Title, as.Status)
		if as.DueAt != nil {
			line += " due " + as.DueAt.Format("2006-01-02")
		}
		printlnFn(line)
	}
	return nil
}
