package models

type Employee struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func DefaultEmployees() []Employee {
	return []Employee{
		{
			Id:     "1",
			Name:   "Sarah Chen",
			Avatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=150&h=150&fit=crop",
		},
		{
			Id:     "2",
			Name:   "Michael Rodriguez",
			Avatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop",
		},
		{
			Id:     "3",
			Name:   "Emily Johnson",
			Avatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop",
		},
		{
			Id:     "4",
			Name:   "David Kim",
			Avatar: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150&h=150&fit=crop",
		},
	}
}
