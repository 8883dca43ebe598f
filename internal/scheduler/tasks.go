package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskBoardReconcile is the periodic safety net behind the event-driven
// refresh path: it forces every API instance to rebuild its snapshot even if
// a change notification was lost.
const TaskBoardReconcile = "board.reconcile"

type BoardReconcilePayload struct {
	Reason      string    `json:"reason"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

func NewBoardReconcileTask(payload BoardReconcilePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBoardReconcile, data), nil
}

func ParseBoardReconcilePayload(task *asynq.Task) (BoardReconcilePayload, error) {
	var payload BoardReconcilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return BoardReconcilePayload{}, err
	}
	return payload, nil
}
