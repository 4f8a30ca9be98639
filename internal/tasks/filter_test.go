package tasks_test

import (
	"testing"

	"todoctl/internal/service"
	"todoctl/internal/tasks"
)

func TestParseFilter(t *testing.T) {
	cases := []struct {
		in      string
		want    tasks.Filter
		wantErr bool
	}{
		{"", tasks.FilterAll, false},
		{"all", tasks.FilterAll, false},
		{"Active", tasks.FilterActive, false},
		{"COMPLETED", tasks.FilterCompleted, false},
		{" active ", tasks.FilterActive, false},
		{"done", "", true},
	}
	for _, tc := range cases {
		got, err := tasks.ParseFilter(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFilter(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFilter(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFilter(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestApply(t *testing.T) {
	list := []service.Task{
		{ID: 1, Name: "A", Completed: false},
		{ID: 2, Name: "B", Completed: true},
	}

	active := tasks.Apply(list, tasks.FilterActive)
	if len(active) != 1 || active[0].ID != 1 {
		t.Errorf("Active filter: expected [task 1], got %v", active)
	}

	completed := tasks.Apply(list, tasks.FilterCompleted)
	if len(completed) != 1 || completed[0].ID != 2 {
		t.Errorf("Completed filter: expected [task 2], got %v", completed)
	}

	all := tasks.Apply(list, tasks.FilterAll)
	if len(all) != 2 {
		t.Errorf("All filter: expected both tasks, got %v", all)
	}
}

func TestApplySingleActiveTask(t *testing.T) {
	list := []service.Task{{ID: 1, Name: "A", Completed: false}}

	if got := tasks.Apply(list, tasks.FilterActive); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Active: expected [task 1], got %v", got)
	}
	if got := tasks.Apply(list, tasks.FilterCompleted); len(got) != 0 {
		t.Errorf("Completed: expected empty, got %v", got)
	}
	if got := tasks.Apply(list, tasks.FilterAll); len(got) != 1 {
		t.Errorf("All: expected one task, got %v", got)
	}
}

func TestFilterCycle(t *testing.T) {
	f := tasks.FilterAll
	f = f.Next()
	if f != tasks.FilterActive {
		t.Errorf("expected active after all, got %v", f)
	}
	f = f.Next()
	if f != tasks.FilterCompleted {
		t.Errorf("expected completed after active, got %v", f)
	}
	f = f.Next()
	if f != tasks.FilterAll {
		t.Errorf("expected all after completed, got %v", f)
	}
}
