package model

import (
	"unsafe"

	"classroom/common"
)

// Model is a mesh together with the device buffers it is drawn from. The buffers are nil until the renderer
// uploaded the mesh.
type Model struct {
	Mesh         *Mesh
	Name         string
	VertexBuffer *common.Buffer
	IndexBuffer  *common.Buffer
}

func NewModel(m *Mesh, n string) *Model {
	return &Model{
		Name: n,
		Mesh: m,
	}
}

// GetVBufferSize returns the size required for keeping the vertices in device memory.
func (m *Model) GetVBufferSize() int {
	return int(unsafe.Sizeof(Vertex{})) * len(m.Mesh.Vertices)
}

// GetVBufferBytes returns the raw bytes representing all vertices for this model.
func (m *Model) GetVBufferBytes() []byte {
	return common.MustRawBytes(m.Mesh.Vertices)
}

func (m *Model) GetIdxBufferSize() int {
	return int(unsafe.Sizeof(uint32(0))) * len(m.Mesh.VIndices)
}

func (m *Model) GetIdxBufferBytes() []byte {
	return common.MustRawBytes(m.Mesh.VIndices)
}

func (m *Model) IndexCount() uint32 {
	return uint32(len(m.Mesh.VIndices))
}

// IsUploaded reports whether both device buffers exist.
func (m *Model) IsUploaded() bool {
	return m.VertexBuffer != nil && m.IndexBuffer != nil
}
