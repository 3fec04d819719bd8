package geoindex

import (
	"sync"

	"github.com/rotisserie/eris"

	"geohash-kit/geohash"
	"geohash-kit/models"
)

const (
	nodeCapacity = 4
	maxDepth     = 32
)

// Bounds represents the boundaries of a region; X is longitude, Y latitude.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

func (b Bounds) intersects(o Bounds) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// QuadtreeNode represents a node in the quadtree
type QuadtreeNode struct {
	Bounds   Bounds
	Places   []models.Place
	Children [4]*QuadtreeNode
}

// Quadtree is a point quadtree over the whole globe.
type Quadtree struct {
	length int

	mu    sync.RWMutex
	root  *QuadtreeNode
	count int
}

func NewQuadtree(length int) (*Quadtree, error) {
	if length < 1 || length > geohash.MaxLength {
		return nil, eris.Wrapf(geohash.ErrInvalidLength, "%d", length)
	}
	return &Quadtree{
		length: length,
		root:   &QuadtreeNode{Bounds: Bounds{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90}},
	}, nil
}

func (qt *Quadtree) Insert(place models.Place) error {
	hash, err := geohash.EncodeLength(place.Latitude, place.Longitude, qt.length)
	if err != nil {
		return eris.Wrapf(err, "geoindex: insert %s", place.ID)
	}
	place.Geohash = hash

	qt.mu.Lock()
	defer qt.mu.Unlock()
	if !qt.root.insert(place, 0) {
		return eris.Errorf("geoindex: insert %s: outside the globe", place.ID)
	}
	qt.count++
	return nil
}

// insert adds a place to the first node that contains it, subdividing full
// leaves.
func (node *QuadtreeNode) insert(place models.Place, depth int) bool {
	if !node.Bounds.contains(place.Longitude, place.Latitude) {
		return false
	}
	if node.Children[0] == nil && (len(node.Places) < nodeCapacity || depth >= maxDepth) {
		node.Places = append(node.Places, place)
		return true
	}
	if node.Children[0] == nil {
		node.subdivide()
	}
	for _, child := range node.Children {
		if child.insert(place, depth+1) {
			return true
		}
	}
	return false
}

// subdivide splits the node into four child nodes
func (node *QuadtreeNode) subdivide() {
	b := node.Bounds
	midX := (b.MinX + b.MaxX) / 2
	midY := (b.MinY + b.MaxY) / 2
	node.Children[0] = &QuadtreeNode{Bounds: Bounds{b.MinX, b.MinY, midX, midY}}
	node.Children[1] = &QuadtreeNode{Bounds: Bounds{midX, b.MinY, b.MaxX, midY}}
	node.Children[2] = &QuadtreeNode{Bounds: Bounds{b.MinX, midY, midX, b.MaxY}}
	node.Children[3] = &QuadtreeNode{Bounds: Bounds{midX, midY, b.MaxX, b.MaxY}}
}

func (qt *Quadtree) Search(lat, lon float64, layer int) ([]models.Place, error) {
	if _, err := cellHash(lat, lon, qt.length, layer); err != nil {
		return nil, err
	}
	halfLat, halfLon := window(qt.length, layer)
	area := Bounds{MinX: lon - halfLon, MinY: lat - halfLat, MaxX: lon + halfLon, MaxY: lat + halfLat}

	qt.mu.RLock()
	defer qt.mu.RUnlock()
	return qt.root.search(area, nil), nil
}

func (node *QuadtreeNode) search(area Bounds, results []models.Place) []models.Place {
	if !node.Bounds.intersects(area) {
		return results
	}
	for _, p := range node.Places {
		if area.contains(p.Longitude, p.Latitude) {
			results = append(results, p)
		}
	}
	if node.Children[0] != nil {
		for _, child := range node.Children {
			results = child.search(area, results)
		}
	}
	return results
}

func (qt *Quadtree) Len() int {
	qt.mu.RLock()
	defer qt.mu.RUnlock()
	return qt.count
}
