package main

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
