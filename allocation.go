package jetimage

// DetermineAllocation splits nSamples events over nWorkers workers. Every
// worker gets nSamples/nWorkers events and the remainder goes one by one
// to the first workers. With fewer samples than workers the trailing
// workers get nothing. nWorkers below 1 is treated as 1.
func DetermineAllocation(nSamples, nWorkers int) []int {
	if nWorkers < 1 {
		nWorkers = 1
	}
	alloc := make([]int, nWorkers)
	if nSamples <= 0 {
		return alloc
	}

	per, rest := nSamples/nWorkers, nSamples%nWorkers
	for i := range alloc {
		alloc[i] = per
		if i < rest {
			alloc[i]++
		}
	}
	return alloc
}
