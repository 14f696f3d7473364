package tensor

// Resource is the buffer collaborator: opaque linear storage of a
// fixed element type and device placement. Tensors never touch memory
// directly; every read, write, fill, and copy goes through this
// contract.
//
// Views returned by View share storage with the parent resource, and
// the implementation is responsible for keeping shared storage alive
// while any view references it. Fill writes through to every sharer.
//
// Implementations:
//   - host: reference-counted host memory (internal/resource/host)
type Resource interface {
	// Len returns the addressable capacity in elements.
	Len() int

	// DType returns the element type.
	DType() DataType

	// Device returns the placement of the storage.
	Device() Device

	// Fill writes the scalar to every addressable element, including
	// elements visible through other views of the same storage.
	Fill(v float64)

	// View returns a zero-copy sub-range [start, end) sharing this
	// resource's storage.
	View(start, end int) (Resource, error)

	// ViewAll returns a zero-copy view of the whole resource.
	ViewAll() Resource

	// Clone returns independent storage with identical contents.
	Clone() (Resource, error)

	// CopyFrom copies src's elements into this resource. It reports
	// false when type, device, or extent are incompatible.
	CopyFrom(src Resource) bool

	// FillNormal fills every element with an independent sample from
	// a normal distribution with the given mean and standard
	// deviation.
	FillNormal(mean, sigma float64)

	// FillUniform fills every element with an independent sample from
	// the uniform distribution over [lo, hi).
	FillUniform(lo, hi float64)

	// At reads the element at linear offset i.
	At(i int) float64

	// Set writes the element at linear offset i.
	Set(i int, v float64)
}

// Allocator provides fresh buffer resources. It is the only way this
// package obtains storage.
type Allocator interface {
	Allocate(n int, dtype DataType, device Device) (Resource, error)
}

// Tracker is implemented by resources that support debug allocation
// tracking. Tensors with tracking enabled log buffer lifecycle events.
type Tracker interface {
	SetTracking(on bool)
}
