package service

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// CustomFieldOverview is the payload of the distinct-custom-field read: the
// raw corpus plus the derived display columns.
type CustomFieldOverview struct {
	CustomFields        []domain.CustomField       `json:"customFields"`
	CustomFieldsColumns []domain.CustomFieldColumn `json:"customFieldsColumns"`
}

type TaskService interface {
	// List returns one page of tasks and the filtered total page count.
	List(ctx context.Context, q domain.ListQuery) ([]domain.Task, int, error)

	// ListAll returns the whole filtered+sorted corpus (export path).
	ListAll(ctx context.Context, sort *domain.Sort, search *domain.Search) ([]domain.Task, error)

	// Create validates and persists a task with its custom fields, returning
	// the generated ID.
	Create(ctx context.Context, in *domain.CreateTaskInput) (int, error)

	// CustomFieldOverview returns the cached custom-field corpus and its
	// projected columns.
	CustomFieldOverview(ctx context.Context) (*CustomFieldOverview, error)
}

type taskService struct {
	repo    domain.TaskRepository
	columns *columnsCache
}

func NewTaskService(repo domain.TaskRepository) TaskService {
	return &taskService{repo: repo, columns: newColumnsCache()}
}

// List applies filter before sort and sort before pagination, and computes
// maxPage from a count that uses the same filter as the page query. The
// custom-field sort runs the two-phase protocol: ordered ID page first, then
// rehydration in that ID order.
func (s *taskService) List(ctx context.Context, q domain.ListQuery) ([]domain.Task, int, error) {
	tasks, err := s.read(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, q.Search)
	if err != nil {
		return nil, 0, err
	}
	return tasks, domain.MaxPage(total, q.RowSize), nil
}

func (s *taskService) ListAll(ctx context.Context, sort *domain.Sort, search *domain.Search) ([]domain.Task, error) {
	// RowSize 0 disables the limit/offset clause.
	return s.read(ctx, domain.ListQuery{Page: 1, Sort: sort, Search: search})
}

func (s *taskService) read(ctx context.Context, q domain.ListQuery) ([]domain.Task, error) {
	if q.Sort != nil && q.Sort.IsCustomField {
		fieldType, found, err := s.repo.FieldTypeFor(ctx, q.Sort.Field)
		if err != nil {
			return nil, err
		}
		if !found {
			fieldType = domain.FieldText
		}

		ids, err := s.repo.ListIDsByCustomField(ctx, q, fieldType)
		if err != nil {
			return nil, err
		}
		tasks, err := s.repo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if tasks == nil {
			tasks = []domain.Task{}
		}
		return tasks, nil
	}

	tasks, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Create runs the creation pipeline: validate, persist atomically, then
// invalidate the column cache synchronously when the custom-field universe
// may have changed.
func (s *taskService) Create(ctx context.Context, in *domain.CreateTaskInput) (int, error) {
	task, err := in.Validate()
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, task)
	if err != nil {
		return 0, err
	}

	if len(task.Fields) > 0 {
		s.columns.Invalidate()
	}
	return id, nil
}

func (s *taskService) CustomFieldOverview(ctx context.Context) (*CustomFieldOverview, error) {
	fields, cols, err := s.columns.get(func() ([]domain.CustomField, []domain.CustomFieldColumn, error) {
		fields, err := s.repo.AllCustomFields(ctx)
		if err != nil {
			return nil, nil, err
		}
		return fields, ProjectColumns(fields), nil
	})
	if err != nil {
		return nil, err
	}
	return &CustomFieldOverview{CustomFields: fields, CustomFieldsColumns: cols}, nil
}
