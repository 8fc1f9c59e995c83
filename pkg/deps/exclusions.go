package deps

// ComputeExclusions returns every installed package that is not in closure,
// sorted by canonical name. It has no side effects.
func ComputeExclusions(installed, closure NameSet) []string {
	return installed.Difference(closure)
}

// MissingFromInstalled returns required packages that are not installed.
// Such packages are declared by metadata but absent from the environment;
// they are worth reporting but do not affect the exclusion list.
func MissingFromInstalled(installed, closure NameSet) []string {
	return closure.Difference(installed)
}
