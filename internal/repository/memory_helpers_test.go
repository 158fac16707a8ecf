package repository

import "strings"

// remove deletes an employee without touching its tasks, leaving any task
// assigned to it orphaned
func (r *MemoryEmployeeRepository) remove(id string) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return
	}
	delete(s.emails, strings.ToLower(e.Email))
	delete(s.employees, id)
	s.employeeOrder = removeID(s.employeeOrder, id)
}
