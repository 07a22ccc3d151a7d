package store

// History queries
const (
	queryInsertHistory = `
		INSERT INTO history (kind, work_id, name, username, status, error, submitted_at, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	queryDeleteHistoryBefore = `DELETE FROM history WHERE finished_at < ?`
)

var historyColumns = []string{
	"id",
	"kind",
	"work_id",
	"name",
	"username",
	"status",
	"error",
	"submitted_at",
	"started_at",
	"finished_at",
}
