package client

import "strings"

// Filter returns the elements whose extracted text fields contain the query,
// case-insensitively. It is pure and order-preserving: an empty query
// returns a copy of the input, and filtering an already-filtered result
// with the same query changes nothing. A nil input stays nil, keeping the
// "not yet fetched" state distinct from "fetched and empty".
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if items == nil {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if query == "" {
			out = append(out, item)
			continue
		}
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// FilterJobs filters jobs on title and category.
func FilterJobs(jobs []Job, query string) []Job {
	return Filter(jobs, query, func(j Job) []string {
		return []string{j.Title, j.Category}
	})
}

// FilterServices filters services on title and skills.
func FilterServices(services []Service, query string) []Service {
	return Filter(services, query, func(s Service) []string {
		return append([]string{s.Title}, s.Skills...)
	})
}
