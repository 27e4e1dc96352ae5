package checklist

import "testing"

func testChecklist() *Checklist {
	return &Checklist{
		ID:         "c1",
		Name:       "Move-in",
		PropertyID: "p1",
		Tasks: []Task{
			{ID: "t1", Text: "Hand over keys", Completed: true},
			{ID: "t2", Text: "Read the meter"},
		},
	}
}

func TestToggledTasks(t *testing.T) {
	c := testChecklist()

	tasks, ok := c.ToggledTasks("t2")
	if !ok {
		t.Fatal("known task not found")
	}
	if !tasks[1].Completed {
		t.Error("t2 not flipped")
	}
	if !tasks[0].Completed {
		t.Error("t1 flipped as a side effect")
	}
	// The receiver is untouched; the caller applies the new list.
	if c.Tasks[1].Completed {
		t.Error("ToggledTasks mutated the checklist")
	}

	if _, ok := c.ToggledTasks("missing"); ok {
		t.Error("missing task reported as found")
	}
}

func TestProgress(t *testing.T) {
	done, total := testChecklist().Progress()
	if done != 1 || total != 2 {
		t.Errorf("Progress() = %d/%d, want 1/2", done, total)
	}

	done, total = (&Checklist{}).Progress()
	if done != 0 || total != 0 {
		t.Errorf("empty Progress() = %d/%d, want 0/0", done, total)
	}
}

func TestDuplicate(t *testing.T) {
	src := testChecklist()
	dup := Duplicate(src)

	if dup.Name != "Move-in (Copy)" {
		t.Errorf("Name = %q", dup.Name)
	}
	if dup.ID != "" || dup.UserID != "" {
		t.Error("duplicate carries identity before being added")
	}
	if dup.PropertyID != src.PropertyID {
		t.Errorf("PropertyID = %q, want %q", dup.PropertyID, src.PropertyID)
	}
	for i, task := range dup.Tasks {
		if task.Completed {
			t.Errorf("task %d completion carried over", i)
		}
		if task.ID == src.Tasks[i].ID {
			t.Errorf("task %d id reused", i)
		}
		if task.Text != src.Tasks[i].Text {
			t.Errorf("task %d text = %q", i, task.Text)
		}
	}
}

func TestNewTask(t *testing.T) {
	a := NewTask("one")
	b := NewTask("two")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids = %q / %q, want distinct non-empty", a.ID, b.ID)
	}
	if a.Completed {
		t.Error("new task born completed")
	}
}

func TestValidate(t *testing.T) {
	if err := testChecklist().Validate(); err != nil {
		t.Errorf("valid checklist rejected: %v", err)
	}
	if err := (&Checklist{}).Validate(); err == nil {
		t.Error("nameless checklist accepted")
	}
}
