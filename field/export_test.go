package field

// Particle returns a copy of particle i.
func (f *Field) Particle(i int) Particle { return f.particles[i] }

// SetVelocity overrides the velocity of particle i.
func (f *Field) SetVelocity(i int, v Vec3) { f.particles[i].Vel = v }

// Displace moves particle i away from its rest position without touching
// its velocity.
func (f *Field) Displace(i int, pos Vec3) { f.particles[i].Pos = pos }
