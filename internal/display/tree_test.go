package display

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileTree_Render(t *testing.T) {
	tree := NewFileTree()
	tree.Add(filepath.Join("2023", "05", "img.jpg"))
	tree.Add(filepath.Join("2023", "05", "img_1.jpg"))
	tree.Add(filepath.Join("2021", "12", "party.png"))

	out := tree.Render("library")

	assert.Contains(t, out, "library")
	assert.Contains(t, out, "2023")
	assert.Contains(t, out, "05")
	assert.Contains(t, out, "img.jpg")
	assert.Contains(t, out, "img_1.jpg")
	assert.Contains(t, out, "party.png")
	assert.Equal(t, 3, tree.Len())
}

func TestFileTree_Empty(t *testing.T) {
	tree := NewFileTree()
	out := tree.Render("library")
	assert.Contains(t, out, "library")
	assert.Zero(t, tree.Len())
}
