package locking

func (l *LocalLocker) Held() int {
	return l.held()
}
