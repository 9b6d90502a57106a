package game

// Run drains the input until FinishGame is applied or the input closes,
// finishing the session either way. Rejections are reported through the
// output inside Apply, so the loop keeps going on recoverable errors.
func (g *Game[S]) Run(in Input) {
	for {
		cmds, ok := in.Poll()
		if !ok {
			_ = g.Apply(FinishGame)
			return
		}
		for _, cmd := range cmds {
			_ = g.Apply(cmd)
			if cmd == FinishGame {
				return
			}
		}
	}
}
