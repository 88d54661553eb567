package directory

// Organize links every employee to the supervisor named by its ReportsTo
// address, appending it to that supervisor's direct reports in roster order.
// Unresolvable or self-referencing supervisors leave the employee as a root.
// Edges are built once; later calls only re-run cycle detection.
//
// The returned cycles are reporting loops found in the roster, each listed in
// supervisor-walk order starting from the first employee reached.
func (d *Directory) Organize() [][]*Employee {
	if !d.organized {
		for _, emp := range d.employees {
			if sup, ok := d.Supervisor(emp); ok {
				sup.addDirectReport(emp)
			}
		}
		d.organized = true
	}
	return d.cycles()
}

// cycles walks the supervisor chain from each employee. Every employee has at
// most one supervisor, so a walk either ends at a root, joins a finished
// walk, or revisits a node on its own path.
func (d *Directory) cycles() [][]*Employee {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[string]int, len(d.employees))
	var found [][]*Employee
	for _, start := range d.employees {
		if state[start.Key()] != unvisited {
			continue
		}
		var path []*Employee
		index := map[string]int{}
		cur := start
		for {
			key := cur.Key()
			if state[key] == done {
				break
			}
			if state[key] == onPath {
				found = append(found, append([]*Employee(nil), path[index[key]:]...))
				break
			}
			state[key] = onPath
			index[key] = len(path)
			path = append(path, cur)
			next, ok := d.Supervisor(cur)
			if !ok {
				break
			}
			cur = next
		}
		for _, emp := range path {
			state[emp.Key()] = done
		}
	}
	return found
}

// Subordinates returns the people below emp. With singleLayer only the direct
// reports are returned; otherwise the full closure over direct-report edges.
// Each employee appears once, in order of first discovery, and emp itself is
// never included even when the roster contains a reporting loop.
func Subordinates(emp *Employee, singleLayer bool) []*Employee {
	if emp == nil || len(emp.reports) == 0 {
		return []*Employee{}
	}
	if singleLayer {
		return emp.DirectReports()
	}
	seen := map[string]bool{emp.Key(): true}
	out := make([]*Employee, 0, len(emp.reports))
	for _, report := range emp.reports {
		if !seen[report.Key()] {
			seen[report.Key()] = true
			out = append(out, report)
		}
	}
	// out doubles as the frontier: every appended employee is expanded once.
	for i := 0; i < len(out); i++ {
		for _, report := range out[i].reports {
			if seen[report.Key()] {
				continue
			}
			seen[report.Key()] = true
			out = append(out, report)
		}
	}
	return out
}

