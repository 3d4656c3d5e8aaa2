package actions

import (
	"container/list"
	"sync"

	"github.com/google/uuid"
)

// DefaultCapacity bounds how many containers a registry keeps
const DefaultCapacity = 512

// Registry maps container ids to containers, every container it creates gets
// the registry's dispatcher attached once. The least recently used container is
// evicted when the registry is full.
type Registry struct {
	d   *Dispatcher
	cap int

	mu    sync.Mutex
	order *list.List
	items map[string]*list.Element
}

// NewRegistry returns a registry attaching d, capacity <= 0 means DefaultCapacity
func NewRegistry(d *Dispatcher, capacity int) *Registry {
	if d == nil {
		panic("actions: NewRegistry requires a dispatcher")
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		d:     d,
		cap:   capacity,
		order: list.New(),
		items: map[string]*list.Element{},
	}
}

// Dispatcher returns the dispatcher attached to every container
func (r *Registry) Dispatcher() *Dispatcher { return r.d }

// Get returns an existing container
func (r *Registry) Get(id string) (*Container, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, ok := r.items[id]
	if !ok {
		return nil, false
	}
	r.order.MoveToFront(el)
	return el.Value.(*Container), true
}

// Ensure returns the container for id, creating it on first use
// an empty id always creates a container with a fresh id
func (r *Registry) Ensure(id string) (*Container, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if el, ok := r.items[id]; ok {
			r.order.MoveToFront(el)
			return el.Value.(*Container), false
		}
	} else {
		id = uuid.NewString()
	}

	c := NewContainer(id)
	c.Attach(r.d)
	r.items[id] = r.order.PushFront(c)

	for r.order.Len() > r.cap {
		old := r.order.Back()
		r.order.Remove(old)
		delete(r.items, old.Value.(*Container).id)
	}
	return c, true
}

// Len returns the number of live containers
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}
