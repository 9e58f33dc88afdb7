package detour

// protectPage changes the protection of the page(s) under a jump sequence.
// Tests replace it to simulate OS failures.
var protectPage = setWritable

// pageRange returns the page-aligned region covering length bytes at addr.
// That's a single page unless the bytes straddle a page boundary.
func pageRange(addr uintptr, length int) (start, size uintptr) {
	pageSize := uintptr(pageSize())

	// Round address down to page boundary.
	// Example: addr=4196 with pageSize=4096 becomes 4096.
	start = addr &^ (pageSize - 1)

	end := addr + uintptr(max(length, 1))
	size = (end - start + pageSize - 1) &^ (pageSize - 1)
	return start, size
}
