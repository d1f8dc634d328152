package layout

// outerZoneThreshold is the outermost band (as a fraction of the pane's
// visual extent) within which a directional drop is promoted to a
// root-level drop instead of a split against the neighboring leaf.
const outerZoneThreshold = 0.12

// ZoneFor partitions visualRect into {Top, Bottom, Left, Right, Center} by
// the 25%/75% lines on each axis, relative to pos.
func ZoneFor(visualRect Rect, pos Vec2) Zone {
	relX := (pos.X - visualRect.X) / visualRect.Width
	relY := (pos.Y - visualRect.Y) / visualRect.Height

	switch {
	case relY < 0.25:
		return ZoneTop
	case relY > 0.75:
		return ZoneBottom
	case relX < 0.25:
		return ZoneLeft
	case relX > 0.75:
		return ZoneRight
	default:
		return ZoneCenter
	}
}

// IsOuterBand reports whether zone should be promoted to a root-level drop:
// the target's tiling rect must touch the pane area's edge on that side,
// and the pointer must be within outerZoneThreshold of that edge. tol
// guards the edge-touch comparison against floating-point roundoff; kept
// at 0.5px rather than tightened, since no reported bug depends on a
// smaller tolerance.
func IsOuterBand(paneArea, targetTiling Rect, visualRect Rect, pos Vec2, zone Zone) bool {
	const tol = 0.5
	if zone == ZoneCenter {
		return false
	}

	touchesBoundary := false
	switch zone {
	case ZoneTop:
		touchesBoundary = targetTiling.Y <= paneArea.Y+tol
	case ZoneBottom:
		touchesBoundary = targetTiling.Y+targetTiling.Height >= paneArea.Y+paneArea.Height-tol
	case ZoneLeft:
		touchesBoundary = targetTiling.X <= paneArea.X+tol
	case ZoneRight:
		touchesBoundary = targetTiling.X+targetTiling.Width >= paneArea.X+paneArea.Width-tol
	}
	if !touchesBoundary {
		return false
	}

	relX := (pos.X - visualRect.X) / visualRect.Width
	relY := (pos.Y - visualRect.Y) / visualRect.Height
	switch zone {
	case ZoneTop:
		return relY < outerZoneThreshold
	case ZoneBottom:
		return relY > 1-outerZoneThreshold
	case ZoneLeft:
		return relX < outerZoneThreshold
	case ZoneRight:
		return relX > 1-outerZoneThreshold
	default:
		return false
	}
}

// SpansEdge reports whether the source pane's tiling rect already spans the
// full perpendicular extent of paneArea's named edge, meaning a root drop
// on that edge would be redundant (the source already occupies the whole
// side, so promoting would be a no-op). zone selects which pair of edges
// (Top/Bottom check horizontal span, Left/Right check vertical span).
func SpansEdge(paneArea, sourceTiling Rect, zone Zone) bool {
	const tol = 0.5
	switch zone {
	case ZoneTop, ZoneBottom:
		return sourceTiling.X <= paneArea.X+tol &&
			sourceTiling.X+sourceTiling.Width >= paneArea.X+paneArea.Width-tol
	case ZoneLeft, ZoneRight:
		return sourceTiling.Y <= paneArea.Y+tol &&
			sourceTiling.Y+sourceTiling.Height >= paneArea.Y+paneArea.Height-tol
	default:
		return false
	}
}
