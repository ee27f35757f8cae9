package gamemath

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// Approach moves current toward target by at most step. A non-positive step
// snaps straight to target.
func Approach(current, target, step float64) float64 {
	if step <= 0 {
		return target
	}
	if current < target {
		if current+step > target {
			return target
		}
		return current + step
	}
	if current-step < target {
		return target
	}
	return current - step
}

// Integrate advances position by velocity over timeDelta seconds.
func Integrate(position, velocity Vector2, timeDelta float64) Vector2 {
	return position.Add(velocity.Scale(timeDelta))
}
