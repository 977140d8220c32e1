package coordinator

import (
	"sort"

	mapset "github.com/deckarep/golang-set"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

// PartitionAssignment maps members of a group to partitions they own.
// It is never changed after creation, a rebalance makes a new one.
type PartitionAssignment struct {
	Generation int64
	Members    map[string][]topictypes.PartitionID
}

// Assign splits partitions between members by ranges. Members and partitions
// are sorted first, so every member computes the same result. Every member
// gets len(partitions)/len(members) partitions, the first
// len(partitions)%len(members) members get one more.
func Assign(generation int64, members []string, partitions []topictypes.PartitionID) PartitionAssignment {
	res := PartitionAssignment{
		Generation: generation,
		Members:    make(map[string][]topictypes.PartitionID, len(members)),
	}

	members = sortedMembers(members)
	partitions = sortedPartitions(partitions)
	if len(members) == 0 {
		return res
	}

	per := len(partitions) / len(members)
	extra := len(partitions) % len(members)

	next := 0
	for i, member := range members {
		count := per
		if i < extra {
			count++
		}
		res.Members[member] = partitions[next : next+count : next+count]
		next += count
	}

	return res
}

// For returns partitions of the member, nil if the member has none.
func (a PartitionAssignment) For(member string) []topictypes.PartitionID {
	return a.Members[member]
}

func sortedMembers(members []string) []string {
	set := mapset.NewThreadUnsafeSet()
	res := make([]string, 0, len(members))
	for _, m := range members {
		if set.Add(m) {
			res = append(res, m)
		}
	}
	sort.Strings(res)

	return res
}

func sortedPartitions(partitions []topictypes.PartitionID) []topictypes.PartitionID {
	set := mapset.NewThreadUnsafeSet()
	res := make([]topictypes.PartitionID, 0, len(partitions))
	for _, p := range partitions {
		if set.Add(p) {
			res = append(res, p)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})

	return res
}

func partitionSet(partitions []topictypes.PartitionID) mapset.Set {
	set := mapset.NewThreadUnsafeSet()
	for _, p := range partitions {
		set.Add(p)
	}

	return set
}

func setPartitions(set mapset.Set) []topictypes.PartitionID {
	res := make([]topictypes.PartitionID, 0, set.Cardinality())
	set.Each(func(v interface{}) bool {
		res = append(res, v.(topictypes.PartitionID))

		return false
	})
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})

	return res
}
