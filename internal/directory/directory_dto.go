package directory

type UserResponse struct {
	ID                   string  `json:"id"`
	Code                 string  `json:"code"`
	FullName             string  `json:"full_name"`
	Role                 string  `json:"role"`
	Department           string  `json:"department"`
	ManagerID            *string `json:"manager_id,omitempty"`
	AnnualLeaveAllowance int     `json:"annual_leave_allowance"`
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:                   u.ID.String(),
		Code:                 u.Code,
		FullName:             u.FullName,
		Role:                 u.Role,
		Department:           u.Department,
		AnnualLeaveAllowance: u.AnnualLeaveAllowance,
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
