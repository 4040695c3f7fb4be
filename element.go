package pathtracer

// ElementID indexes an Element within a Scene. Elements reference each
// other (composed membership, nested-medium parents) by id rather than by
// pointer, resolved through the Scene, which is what lets composed groups
// and their members point at each other without a cyclic Go reference.
type ElementID int

// Element pairs a Shape with a Material. ComposedID is set when the
// element is a member of a ComposedElement.
type Element struct {
	ID         ElementID
	Shape      Shape
	Material   *Material
	ComposedID *ElementID
}

func (e *Element) IsTransparent() bool {
	return e.Material != nil && e.Material.IsTransparent()
}

// ComposedElement groups member elements under one logical entity for the
// UI collaborator. Transform is stored with the group; nothing in this
// package applies it to the member elements' shapes.
type ComposedElement struct {
	ID        ElementID
	Name      string
	MemberIDs []ElementID
	Transform *Transform
}
