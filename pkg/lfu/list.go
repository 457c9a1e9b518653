package lfu

// node is an element of a circular doubly linked list with a sentinel head.
type node[T any] struct {
	prev, next *node[T]
	data       T
}

type list[T any] struct {
	head *node[T]
	size int
}

func newList[T any]() *list[T] {
	head := &node[T]{}
	head.prev = head
	head.next = head
	return &list[T]{head: head}
}

func link[T any](a, b *node[T]) {
	a.next = b
	b.prev = a
}

// insertBefore links n in front of at and returns n.
func (l *list[T]) insertBefore(at, n *node[T]) *node[T] {
	link(at.prev, n)
	link(n, at)
	l.size++
	return n
}

func (l *list[T]) pushFront(value T) *node[T] {
	return l.insertBefore(l.head.next, &node[T]{data: value})
}

func (l *list[T]) pushBack(value T) *node[T] {
	return l.insertBefore(l.head, &node[T]{data: value})
}

// moveToFront unlinks n from its current list and puts it first in l without allocating.
func (l *list[T]) moveToFront(n *node[T], from *list[T]) {
	if l.head.next == n {
		return
	}
	from.remove(n)
	l.insertBefore(l.head.next, n)
}

func (l *list[T]) remove(n *node[T]) {
	link(n.prev, n.next)
	n.prev, n.next = nil, nil
	l.size--
}

func (l *list[T]) front() *node[T] {
	if l.size == 0 {
		return nil
	}
	return l.head.next
}

func (l *list[T]) back() *node[T] {
	if l.size == 0 {
		return nil
	}
	return l.head.prev
}

// before returns the node preceding n, or nil when n is the first one.
func (l *list[T]) before(n *node[T]) *node[T] {
	if n.prev == l.head {
		return nil
	}
	return n.prev
}
