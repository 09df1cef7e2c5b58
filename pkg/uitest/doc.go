// Package uitest provides helpers for testing Bubble Tea models with teatest.
//
//	func TestModel(t *testing.T) {
//	    t.Parallel()
//
//	    tm := uitest.NewTestModel(t, model, uitest.Compact)
//	    tm.Send(tea.KeyMsg{Type: tea.KeyRight})
//	    uitest.WaitForText(t, tm.Output(), "page 2 of 5")
//	}
package uitest
