package attach

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/evolution/internal/event"
	"github.com/Iron-Ham/evolution/internal/panel"
	"github.com/Iron-Ham/evolution/internal/surface"
)

type recorder struct {
	events []string
}

func (r *recorder) record(bus *event.Bus) {
	bus.SubscribeAll(func(e event.Event) {
		switch ev := e.(type) {
		case event.SurfaceAttachedEvent:
			r.events = append(r.events, "attach "+ev.SurfaceID+" "+ev.Slot)
		case event.SurfaceDetachedEvent:
			r.events = append(r.events, "detach "+ev.SurfaceID+" "+ev.Slot)
		case event.InvariantRepairedEvent:
			r.events = append(r.events, "repair "+ev.SurfaceID+" "+ev.Action)
		}
	})
}

func newTechPanels() []*panel.Descriptor {
	titles := []string{"Audio", "Body", "Rotation", "Depth with Color"}
	kinds := surface.TechKinds()
	out := make([]*panel.Descriptor, len(titles))
	for i := range titles {
		s := surface.NewFake(kinds[i].String(), kinds[i])
		out[i] = panel.New(s, panel.KindDerivedVisualization, titles[i], "")
	}
	return out
}

func ids(surfaces []surface.Surface) []string {
	out := make([]string, len(surfaces))
	for i, s := range surfaces {
		out[i] = s.ID()
	}
	return out
}

func selectedCount(panels []*panel.Descriptor) int {
	n := 0
	for _, p := range panels {
		if p.IsSelected() && p.Kind() == panel.KindDerivedVisualization {
			n++
		}
	}
	return n
}

func TestAttachDetach(t *testing.T) {
	bus := event.NewBus()
	rec := &recorder{}
	rec.record(bus)
	c := New(bus, nil)
	s := surface.NewFake("cam", surface.KindCamera)

	if err := c.Attach(s, SlotCamera); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if c.Where(s) != SlotCamera || c.Occupant(SlotCamera) != s {
		t.Errorf("Where() = %v, Occupant() = %v", c.Where(s), c.Occupant(SlotCamera))
	}
	if err := c.Attach(s, SlotCamera); err != nil {
		t.Fatalf("re-Attach() error = %v", err)
	}

	if got := c.Detach(s); got != SlotCamera {
		t.Errorf("Detach() = %v, want camera", got)
	}
	if got := c.Detach(s); got != SlotNone {
		t.Errorf("second Detach() = %v, want none", got)
	}
	if c.Occupant(SlotCamera) != nil {
		t.Error("camera slot should be empty")
	}

	want := []string{"attach cam camera", "detach cam camera"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestAttach_Validation(t *testing.T) {
	c := New(nil, nil)
	if err := c.Attach(nil, SlotTech); err == nil {
		t.Error("Attach(nil) should fail")
	}
	if err := c.Attach(surface.NewFake("x", surface.KindAudio), SlotNone); err == nil {
		t.Error("Attach(SlotNone) should fail")
	}
	if c.Where(nil) != SlotNone || c.Detach(nil) != SlotNone {
		t.Error("nil surface should be nowhere")
	}
}

func TestAttach_AlreadyAttachedElsewhereIsRepaired(t *testing.T) {
	bus := event.NewBus()
	rec := &recorder{}
	rec.record(bus)
	c := New(bus, nil)
	s := surface.NewFake("body", surface.KindBody)

	_ = c.Attach(s, SlotThumbnails)
	if err := c.Attach(s, SlotTech); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	if c.Where(s) != SlotTech {
		t.Errorf("Where() = %v, want tech", c.Where(s))
	}
	if len(c.Members(SlotThumbnails)) != 0 {
		t.Error("surface should no longer rest in thumbnails")
	}
	want := []string{
		"attach body thumbnails",
		"repair body detached",
		"detach body thumbnails",
		"attach body tech",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestAttach_OccupiedSingleSlotEvicts(t *testing.T) {
	c := New(nil, nil)
	a := surface.NewFake("a", surface.KindAudio)
	b := surface.NewFake("b", surface.KindBody)

	_ = c.Attach(a, SlotTech)
	_ = c.Attach(b, SlotTech)

	if c.Occupant(SlotTech) != b {
		t.Errorf("Occupant(tech) = %v, want b", c.Occupant(SlotTech))
	}
	if c.Where(a) != SlotThumbnails {
		t.Errorf("evicted surface is in %v, want thumbnails", c.Where(a))
	}
	if n := len(c.Members(SlotTech)); n != 1 {
		t.Errorf("tech slot holds %d surfaces, want 1", n)
	}
}

func TestMembers_Order(t *testing.T) {
	c := New(nil, nil)
	for _, id := range []string{"x", "y", "z"} {
		_ = c.Attach(surface.NewFake(id, surface.KindAudio), SlotThumbnails)
	}
	if diff := cmp.Diff([]string{"x", "y", "z"}, ids(c.Members(SlotThumbnails))); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestTrack_StartsInThumbnails(t *testing.T) {
	c := New(nil, nil)
	panels := newTechPanels()
	for _, p := range panels {
		c.Track(p)
		c.Track(p)
	}
	if c.Tracked() != 4 {
		t.Errorf("Tracked() = %d, want 4", c.Tracked())
	}
	if len(c.Members(SlotThumbnails)) != 4 {
		t.Errorf("thumbnails hold %d, want 4", len(c.Members(SlotThumbnails)))
	}
	for _, p := range panels {
		if p.SubscriberCount() != 1 {
			t.Errorf("%s has %d subscribers, want 1", p.Title(), p.SubscriberCount())
		}
	}
}

func TestSelect_Protocol(t *testing.T) {
	c := New(nil, nil)
	panels := newTechPanels()
	for _, p := range panels {
		c.Track(p)
	}

	if reverted := c.Select(nil, panels[1]); reverted {
		t.Fatal("Select(nil, body) reverted")
	}
	if !panels[1].IsSelected() || c.Where(panels[1].Surface()) != SlotTech {
		t.Fatal("body should be selected and live")
	}

	c.Select(panels[1], panels[2])

	if panels[1].IsSelected() {
		t.Error("body should be deselected")
	}
	if got := c.Where(panels[1].Surface()); got != SlotThumbnails {
		t.Errorf("body surface in %v, want thumbnails", got)
	}
	if !panels[2].IsSelected() || c.Occupant(SlotTech) != panels[2].Surface() {
		t.Error("rotation should be selected and live")
	}
	if n := selectedCount(panels); n != 1 {
		t.Errorf("%d tech panels selected, want exactly 1", n)
	}
	if n := len(c.Members(SlotThumbnails)); n != 3 {
		t.Errorf("thumbnails hold %d, want 3", n)
	}
}

func TestSelect_ExactlyOneSelectedAfterAnySequence(t *testing.T) {
	c := New(nil, nil)
	panels := newTechPanels()
	for _, p := range panels {
		c.Track(p)
	}

	sequence := []int{0, 3, 3, 1, 2, 0, 1}
	var prev *panel.Descriptor
	for _, idx := range sequence {
		next := panels[idx]
		c.Select(prev, next)
		prev = next

		if n := selectedCount(panels); n != 1 {
			t.Fatalf("after selecting %d: %d panels selected", idx, n)
		}
		if c.Occupant(SlotTech) != next.Surface() {
			t.Fatalf("after selecting %d: wrong tech occupant", idx)
		}
		if n := len(c.Members(SlotTech)) + len(c.Members(SlotThumbnails)); n != 4 {
			t.Fatalf("after selecting %d: %d surfaces attached, want 4", idx, n)
		}
	}
}

func TestSelect_NilNextReverts(t *testing.T) {
	c := New(nil, nil)
	panels := newTechPanels()
	c.Track(panels[0])
	c.Select(nil, panels[0])

	if reverted := c.Select(panels[0], nil); !reverted {
		t.Error("Select(x, nil) should report reverted")
	}
	if panels[0].IsSelected() {
		t.Error("previous panel should still be deselected")
	}
}

func TestSelect_SourceFeedNotAttachedToTech(t *testing.T) {
	c := New(nil, nil)
	cam := panel.New(surface.NewFake("cam", surface.KindCamera), panel.KindSourceFeed, "Camera", "")
	c.Select(nil, cam)

	if !cam.IsSelected() {
		t.Error("source feed should be marked selected")
	}
	if c.Where(cam.Surface()) == SlotTech {
		t.Error("source feed must not enter the tech slot")
	}
}

func TestSelect_UntrackedPreviousReturnsToRest(t *testing.T) {
	c := New(nil, nil)
	panels := newTechPanels()
	c.Select(nil, panels[0])
	c.Select(panels[0], panels[1])

	if got := c.Where(panels[0].Surface()); got != SlotThumbnails {
		t.Errorf("untracked previous surface in %v, want thumbnails", got)
	}
}

func TestExternalDeselect_ReturnsToThumbnails(t *testing.T) {
	c := New(nil, nil)
	p := newTechPanels()[0]
	p.SetSelected(true)
	c.Track(p)

	if c.Where(p.Surface()) != SlotNone {
		t.Fatalf("selected surface should not start in thumbnails")
	}
	p.SetSelected(false)
	if got := c.Where(p.Surface()); got != SlotThumbnails {
		t.Errorf("Where() = %v, want thumbnails", got)
	}
}

func TestExternalDeselect_LiveSurfaceIsReselected(t *testing.T) {
	bus := event.NewBus()
	rec := &recorder{}
	rec.record(bus)
	c := New(bus, nil)
	p := newTechPanels()[1]
	c.Track(p)
	c.Select(nil, p)
	rec.events = nil

	p.SetSelected(false)

	if !p.IsSelected() {
		t.Error("live surface should be forced back to selected")
	}
	if c.Where(p.Surface()) != SlotTech {
		t.Errorf("surface moved to %v, want it to stay in tech", c.Where(p.Surface()))
	}
	want := []string{"repair body " + ActionReselected}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestUntrackAndReset(t *testing.T) {
	c := New(nil, nil)
	panels := newTechPanels()
	for _, p := range panels {
		c.Track(p)
	}
	c.Untrack(panels[0])
	c.Untrack(panels[0])
	if panels[0].SubscriberCount() != 0 {
		t.Error("Untrack should remove the subscription")
	}

	c.Reset()
	if c.Tracked() != 0 {
		t.Errorf("Tracked() = %d after Reset", c.Tracked())
	}
	for _, p := range panels {
		if p.SubscriberCount() != 0 {
			t.Errorf("%s still subscribed after Reset", p.Title())
		}
		if c.Where(p.Surface()) != SlotNone {
			t.Errorf("%s still attached after Reset", p.Title())
		}
	}
}

func TestSlot_String(t *testing.T) {
	if SlotNone.String() != "none" || SlotTech.String() != "tech" {
		t.Error("unexpected slot names")
	}
}
