package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/taskboard/taskboard-api/internal/domain"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) domain.TaskRepository {
	return &taskRepository{db: db}
}

// sortColumns maps wire accessors to table columns. Only names in this map
// ever reach an ORDER BY or WHERE clause.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

const taskColumns = "id, title, priority, status, created_at, updated_at"

func (r *taskRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Task, error) {
	orderBy, err := fixedOrderClause(q.Sort)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	var args []interface{}
	sb.WriteString("SELECT " + taskColumns + " FROM task")
	args = appendSearchClause(&sb, args, q.Search, "")
	sb.WriteString(" ORDER BY " + orderBy)
	appendPageClause(&sb, &args, q)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list tasks", Err: err}
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list tasks", Err: err}
	}
	if err := r.attachCustomFields(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Count(ctx context.Context, search *domain.Search) (int, error) {
	var sb strings.Builder
	var args []interface{}
	sb.WriteString("SELECT count(*) FROM task")
	args = appendSearchClause(&sb, args, search, "")

	var total int
	if err := r.db.QueryRowContext(ctx, sb.String(), args...).Scan(&total); err != nil {
		return 0, &domain.PersistenceError{Op: "count tasks", Err: err}
	}
	return total, nil
}

func (r *taskRepository) FieldTypeFor(ctx context.Context, name string) (domain.FieldType, bool, error) {
	var t domain.FieldType
	err := r.db.QueryRowContext(ctx,
		"SELECT type FROM custom_field WHERE lower(name) = lower($1) ORDER BY id LIMIT 1",
		name,
	).Scan(&t)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.PersistenceError{Op: "resolve custom field type", Err: err}
	}
	return t, true, nil
}

// ListIDsByCustomField is phase one of the two-phase custom-field sort. The
// lateral join picks the first matching (name, type) field per task, so a
// task holding duplicates contributes one deterministic value. Tasks lacking
// the field sort after tasks having it regardless of direction; the requested
// direction only orders the presence group.
func (r *taskRepository) ListIDsByCustomField(ctx context.Context, q domain.ListQuery, fieldType domain.FieldType) ([]int, error) {
	if q.Sort == nil || !q.Sort.IsCustomField {
		return nil, fmt.Errorf("query has no custom field sort")
	}

	var sb strings.Builder
	args := []interface{}{q.Sort.Field, string(fieldType)}
	sb.WriteString(`SELECT t.id FROM task t
		LEFT JOIN LATERAL (
			SELECT cf.value FROM custom_field cf
			WHERE cf.task_id = t.id AND lower(cf.name) = lower($1) AND cf.type = $2
			ORDER BY cf.id LIMIT 1
		) f ON true`)
	args = appendSearchClause(&sb, args, q.Search, "t.")
	sb.WriteString(" ORDER BY " + customOrderClause(fieldType, q.Sort.Direction))
	appendPageClause(&sb, &args, q)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list tasks by custom field", Err: err}
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, &domain.PersistenceError{Op: "list tasks by custom field", Err: err}
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "list tasks by custom field", Err: err}
	}
	return ids, nil
}

// GetByIDs is phase two: rehydrate full rows and reassemble them in the exact
// ID order phase one produced.
func (r *taskRepository) GetByIDs(ctx context.Context, ids []int) ([]domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM task WHERE id = ANY($1)",
		pq.Array(ids),
	)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fetch tasks by id", Err: err}
	}
	defer rows.Close()

	fetched, err := scanTasks(rows)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fetch tasks by id", Err: err}
	}

	byID := make(map[int]domain.Task, len(fetched))
	for _, t := range fetched {
		byID[t.ID] = t
	}
	tasks := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			tasks = append(tasks, t)
		}
	}

	if err := r.attachCustomFields(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) AllCustomFields(ctx context.Context) ([]domain.CustomField, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, task_id, name, type, value FROM custom_field ORDER BY id")
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read custom fields", Err: err}
	}
	defer rows.Close()

	fields, err := scanCustomFields(rows)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read custom fields", Err: err}
	}
	return fields, nil
}

// Create inserts the task and bulk-inserts its custom fields in a single
// transaction, so a field failure never leaves an orphaned task behind.
func (r *taskRepository) Create(ctx context.Context, t *domain.NewTask) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "create task", Err: err}
	}

	var id int
	err = tx.QueryRowContext(ctx,
		"INSERT INTO task (title, priority, status) VALUES ($1, $2, $3) RETURNING id",
		t.Title, string(t.Priority), string(t.Status),
	).Scan(&id)
	if err != nil {
		tx.Rollback()
		return 0, &domain.PersistenceError{Op: "create task", Err: err}
	}
	if id == 0 {
		tx.Rollback()
		return 0, &domain.PersistenceError{Op: "create task", Err: fmt.Errorf("no generated id returned")}
	}

	if len(t.Fields) > 0 {
		if err := bulkInsertFields(ctx, tx, id, t.Fields); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return 0, &domain.PartialWriteError{TaskID: id, Err: err}
			}
			return 0, &domain.PersistenceError{Op: "create custom fields", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &domain.PersistenceError{Op: "create task", Err: err}
	}
	return id, nil
}

func bulkInsertFields(ctx context.Context, tx *sql.Tx, taskID int, fields []domain.NewCustomField) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("custom_field", "task_id", "name", "type", "value"))
	if err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := stmt.ExecContext(ctx, taskID, f.Name, string(f.Type), f.Value.Canonical()); err != nil {
			stmt.Close()
			return err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return err
	}
	return stmt.Close()
}

func (r *taskRepository) attachCustomFields(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]int, len(tasks))
	index := make(map[int]int, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
		index[tasks[i].ID] = i
		tasks[i].CustomFields = []domain.CustomField{}
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, task_id, name, type, value FROM custom_field WHERE task_id = ANY($1) ORDER BY id",
		pq.Array(ids),
	)
	if err != nil {
		return &domain.PersistenceError{Op: "read custom fields", Err: err}
	}
	defer rows.Close()

	fields, err := scanCustomFields(rows)
	if err != nil {
		return &domain.PersistenceError{Op: "read custom fields", Err: err}
	}
	for _, f := range fields {
		if i, ok := index[f.TaskID]; ok {
			tasks[i].CustomFields = append(tasks[i].CustomFields, f)
		}
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanCustomFields(rows *sql.Rows) ([]domain.CustomField, error) {
	var fields []domain.CustomField
	for rows.Next() {
		var f domain.CustomField
		if err := rows.Scan(&f.ID, &f.TaskID, &f.Name, &f.Type, &f.Value); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}
