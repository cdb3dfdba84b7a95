package renderer

import "classroom/scene"

// batch is a run of draws sharing primitive and material, so descriptor sets and buffers are bound once per run.
type batch struct {
	primitive string
	material  *scene.Material
	draws     []*scene.DrawCmd
}

// batchDraws groups list by (primitive, material) in order of first appearance. Draws keep their relative order
// inside a batch. The depth test makes the order between batches irrelevant.
func batchDraws(list scene.DrawList) []batch {
	type key struct {
		primitive string
		material  *scene.Material
	}
	idx := map[key]int{}
	var batches []batch
	for i := range list {
		cmd := &list[i]
		k := key{cmd.Primitive, cmd.Material}
		j, ok := idx[k]
		if !ok {
			j = len(batches)
			idx[k] = j
			batches = append(batches, batch{primitive: cmd.Primitive, material: cmd.Material})
		}
		batches[j].draws = append(batches[j].draws, cmd)
	}
	return batches
}
