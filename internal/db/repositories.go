package db

import "gorm.io/gorm"

type Repositories struct {
	Companies     *CompanyRepository
	Users         *UserRepository
	TaskLists     *TaskListRepository
	Tasks         *TaskRepository
	TaskInstances *TaskInstanceRepository
	ManagerNotes  *ManagerNoteRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Companies:     NewCompanyRepository(database),
		Users:         NewUserRepository(database),
		TaskLists:     NewTaskListRepository(database),
		Tasks:         NewTaskRepository(database),
		TaskInstances: NewTaskInstanceRepository(database),
		ManagerNotes:  NewManagerNoteRepository(database),
	}
}
