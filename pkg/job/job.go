package job

// Job is a unit of work producing a T. Implementations are supplied by callers.
type Job[T any] interface {
	Name() string
	User() string
	Message() string
	// StatusMessages is read on every snapshot and must be safe for concurrent use.
	StatusMessages() map[string]string
	Run(ctx Context) (T, error)
	// OnCancel is called at most once, when the job is cancelled before it finishes.
	OnCancel()
}

type funcMeta struct {
	user     string
	message  string
	status   func() map[string]string
	onCancel func()
}

// FuncOption configures a job built by NewFunc.
type FuncOption func(*funcMeta)

func WithUser(user string) FuncOption {
	return func(m *funcMeta) {
		m.user = user
	}
}

func WithMessage(message string) FuncOption {
	return func(m *funcMeta) {
		m.message = message
	}
}

// WithStatusMessages sets the function reporting the job's progress messages.
func WithStatusMessages(fn func() map[string]string) FuncOption {
	return func(m *funcMeta) {
		m.status = fn
	}
}

func WithOnCancel(fn func()) FuncOption {
	return func(m *funcMeta) {
		m.onCancel = fn
	}
}

// FuncJob adapts a plain function into a Job.
type FuncJob[T any] struct {
	name string
	fn   func(Context) (T, error)
	meta funcMeta
}

func NewFunc[T any](name string, fn func(Context) (T, error), opts ...FuncOption) *FuncJob[T] {
	j := &FuncJob[T]{name: name, fn: fn}
	for _, o := range opts {
		o(&j.meta)
	}
	return j
}

func (j *FuncJob[T]) Name() string { return j.name }

func (j *FuncJob[T]) User() string { return j.meta.user }

func (j *FuncJob[T]) Message() string { return j.meta.message }

func (j *FuncJob[T]) StatusMessages() map[string]string {
	if j.meta.status == nil {
		return nil
	}
	return j.meta.status()
}

func (j *FuncJob[T]) Run(ctx Context) (T, error) {
	return j.fn(ctx)
}

func (j *FuncJob[T]) OnCancel() {
	if j.meta.onCancel != nil {
		j.meta.onCancel()
	}
}
