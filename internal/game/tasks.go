package game

// task is a cooperative animation: step runs once per simulation tick until
// stop reports true, then done runs exactly once.
type task struct {
	owner    Body
	step     func()
	stop     func() bool
	done     func(cancelled bool)
	finished bool
}

func (t *task) finish(cancelled bool) {
	if t.finished {
		return
	}
	t.finished = true
	if t.done != nil {
		t.done(cancelled)
	}
}

// TaskSet schedules the animations of one session. Tasks owned by a body are
// cancelled when that body is removed; their done callback then sees
// cancelled=true.
type TaskSet struct {
	tasks   []*task
	byOwner map[Body][]*task
}

// NewTaskSet returns an empty set.
func NewTaskSet() *TaskSet {
	return &TaskSet{byOwner: make(map[Body][]*task)}
}

// Animate registers a task. owner may be nil for tasks tied to no body.
// A task added during Tick first runs on the following Tick.
func (ts *TaskSet) Animate(owner Body, step func(), stop func() bool, done func(cancelled bool)) {
	t := &task{owner: owner, step: step, stop: stop, done: done}
	ts.tasks = append(ts.tasks, t)
	if owner != nil {
		ts.byOwner[owner] = append(ts.byOwner[owner], t)
	}
}

// After runs fn once the timer has elapsed. Cancellation skips fn.
func (ts *TaskSet) After(timer *Timer, fn func()) {
	ts.Animate(nil, nil, timer.HasElapsed, func(cancelled bool) {
		if !cancelled {
			fn()
		}
	})
}

// Tick advances every task registered before this call.
func (ts *TaskSet) Tick() {
	current := ts.tasks
	for _, t := range current {
		if t.finished {
			continue
		}
		if t.step != nil {
			t.step()
		}
		if t.finished {
			continue
		}
		if t.stop == nil || t.stop() {
			t.finish(false)
		}
	}
	ts.compact()
}

// Cancel finishes every pending task owned by b.
func (ts *TaskSet) Cancel(b Body) {
	owned := ts.byOwner[b]
	delete(ts.byOwner, b)
	for _, t := range owned {
		t.finish(true)
	}
}

// CancelAll finishes every pending task.
func (ts *TaskSet) CancelAll() {
	pending := ts.tasks
	ts.tasks = nil
	ts.byOwner = make(map[Body][]*task)
	for _, t := range pending {
		t.finish(true)
	}
	ts.compact()
}

// Len returns the number of pending tasks.
func (ts *TaskSet) Len() int {
	n := 0
	for _, t := range ts.tasks {
		if !t.finished {
			n++
		}
	}
	return n
}

func (ts *TaskSet) compact() {
	kept := ts.tasks[:0]
	for _, t := range ts.tasks {
		if !t.finished {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(ts.tasks); i++ {
		ts.tasks[i] = nil
	}
	ts.tasks = kept
	for owner, owned := range ts.byOwner {
		live := owned[:0]
		for _, t := range owned {
			if !t.finished {
				live = append(live, t)
			}
		}
		if len(live) == 0 {
			delete(ts.byOwner, owner)
		} else {
			ts.byOwner[owner] = live
		}
	}
}
