// Package jobs provides scheduled background tasks for the dispatch engine.
//
// The only job is the assignment sweep: a cron-based task built on
// github.com/robfig/cron/v3 that periodically runs the assignment
// operation for every registered courier. The sweep is safe to run at any
// frequency because assignment is idempotent while a run is open and "no
// run" is a normal outcome, not an error.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(listCourierIDsHandler, assignHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
