package ui

// quietRenderer tracks frames but produces no output.
type quietRenderer struct {
	FrameState
}

func (r *quietRenderer) Draw()          {}
func (r *quietRenderer) Println(string) {}
func (r *quietRenderer) Finish()        {}
