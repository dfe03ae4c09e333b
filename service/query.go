package service

import (
	"echocity/models"
	"fmt"
	"math"
)

// FilterAll is the filter value the map view sends for "no filter"
const FilterAll = "all"

// ComplaintFilter narrows a complaint list. Empty or "all" fields match everything.
type ComplaintFilter struct {
	CategoryID string
	Status     models.ComplaintStatus
}

// CountByStatus counts complaints per status plus the total
func CountByStatus(complaints []models.Complaint) models.StatusCounts {
	counts := models.StatusCounts{Total: len(complaints)}
	for _, c := range complaints {
		switch c.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusResolved:
			counts.Resolved++
		}
	}
	return counts
}

// FilterComplaints returns the subsequence matching every supplied filter, in input order
func FilterComplaints(complaints []models.Complaint, f ComplaintFilter) []models.Complaint {
	out := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if active(f.CategoryID) && c.CategoryID != f.CategoryID {
			continue
		}
		if active(string(f.Status)) && c.Status != f.Status {
			continue
		}
		out = append(out, c)
	}
	return out
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

// ClusterKey returns the ~0.01° grid cell of a coordinate: floor(lat×100)_floor(lng×100)
func ClusterKey(latitude, longitude float64) string {
	return fmt.Sprintf("%d_%d", int64(math.Floor(latitude*100)), int64(math.Floor(longitude*100)))
}

// ClusterComplaints groups located complaints by grid cell.
// Complaints missing either coordinate are left out. Clusters come back in order of first
// appearance, and each one is anchored at its first member.
func ClusterComplaints(complaints []models.Complaint) []models.Cluster {
	var clusters []models.Cluster
	index := make(map[string]int)

	for _, c := range complaints {
		if !c.HasLocation() {
			continue
		}
		key := ClusterKey(*c.Latitude, *c.Longitude)
		i, ok := index[key]
		if !ok {
			index[key] = len(clusters)
			clusters = append(clusters, models.Cluster{
				Key:       key,
				Latitude:  *c.Latitude,
				Longitude: *c.Longitude,
			})
			i = len(clusters) - 1
		}
		clusters[i].Complaints = append(clusters[i].Complaints, c)
	}

	if clusters == nil {
		return []models.Cluster{}
	}
	return clusters
}
